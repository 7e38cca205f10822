package contracts

import "time"

// Clock provides the current time to NOW and TODAY
type Clock interface {
	Now() time.Time
}
