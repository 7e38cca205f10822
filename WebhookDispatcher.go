package main

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"spreadsheetPro/contracts"
	"sync"
	"time"

	json "github.com/bytedance/sonic"
	"github.com/google/uuid"
	"go.alis.build/alog"
)

const DefaultWebhookWorkersCount = 5

const webhookQueueSize = 20

type webhookSubscription struct {
	id  string
	url string
}

type WebhookSendCommand struct {
	Webhook string
	Cell    contracts.Cell
}

// WebhookDispatcher posts changed cells to the urls subscribed to them.
// Delivery runs on a fixed pool of workers and never blocks the edit that caused it.
type WebhookDispatcher struct {
	mutex        sync.RWMutex
	queue        chan WebhookSendCommand
	done         chan struct{}
	closeOnce    sync.Once
	workers      sync.WaitGroup
	workersCount int
	client       *http.Client
	webhooks     map[string]webhookSubscription
}

func NewWebhookDispatcher(workersCount int) *WebhookDispatcher {
	if workersCount < 1 {
		workersCount = DefaultWebhookWorkersCount
	}

	return &WebhookDispatcher{
		queue:        make(chan WebhookSendCommand, webhookQueueSize),
		done:         make(chan struct{}),
		workersCount: workersCount,
		client: &http.Client{
			Timeout: time.Second * 5,
		},
		webhooks: map[string]webhookSubscription{},
	}
}

func (manager *WebhookDispatcher) SetWebhookUrl(cellKey string, webhookUrl string) string {
	manager.mutex.Lock()
	defer manager.mutex.Unlock()

	if webhookUrl == "" {
		delete(manager.webhooks, cellKey)
		return ""
	}

	subscription := webhookSubscription{id: uuid.NewString(), url: webhookUrl}
	manager.webhooks[cellKey] = subscription
	return subscription.id
}

func (manager *WebhookDispatcher) GetWebhookUrl(cellKey string) string {
	manager.mutex.RLock()
	defer manager.mutex.RUnlock()

	return manager.webhooks[cellKey].url
}

func (manager *WebhookDispatcher) Notify(cells []*contracts.Cell) {
	manager.mutex.RLock()
	commands := make([]WebhookSendCommand, 0)
	for _, cell := range cells {
		if subscription, ok := manager.webhooks[cell.Key]; ok {
			commands = append(commands, WebhookSendCommand{
				Webhook: subscription.url,
				Cell:    *cell,
			})
		}
	}
	manager.mutex.RUnlock()

	if len(commands) > 0 {
		go manager.addToQueue(commands)
	}
}

func (manager *WebhookDispatcher) addToQueue(commands []WebhookSendCommand) {
	for _, command := range commands {
		select {
		case manager.queue <- command:
		case <-manager.done:
			return
		}
	}
}

func (manager *WebhookDispatcher) Start() {
	for i := 0; i < manager.workersCount; i++ {
		manager.workers.Add(1)
		go manager.runWebhookSenderWorker()
	}
}

// Close stops the workers, commands still waiting in the queue are dropped
func (manager *WebhookDispatcher) Close() {
	manager.closeOnce.Do(func() {
		close(manager.done)
	})
	manager.workers.Wait()
}

func (manager *WebhookDispatcher) runWebhookSenderWorker() {
	defer manager.workers.Done()

	for {
		select {
		case command := <-manager.queue:
			manager.send(command)
		case <-manager.done:
			return
		}
	}
}

func (manager *WebhookDispatcher) send(command WebhookSendCommand) {
	ctx := context.Background()

	payload, err := json.Marshal(command.Cell)
	if err != nil {
		alog.Errorf(ctx, "webhook payload for %s: %s", command.Cell.Key, err)
		return
	}

	response, err := manager.client.Post(command.Webhook, "application/json", bytes.NewBuffer(payload))
	if err != nil {
		alog.Errorf(ctx, "webhook send error: %s", err)
		return
	}
	defer response.Body.Close()
	_, _ = io.Copy(io.Discard, response.Body)

	if response.StatusCode >= 300 {
		alog.Warnf(ctx, "unexpected webhook response HTTP status: %s", response.Status)
	}
}
