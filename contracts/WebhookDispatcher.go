package contracts

type WebhookDispatcher interface {
	// SetWebhookUrl subscribes the url to changes of the cell, an empty url unsubscribes
	SetWebhookUrl(cellKey string, webhookUrl string) (subscriptionId string)
	GetWebhookUrl(cellKey string) string
	Notify(cells []*Cell)
	Start()
	Close()
}
