package port

import (
	"context"
	"time"

	"doneapp/internal/core/domain"
)

// Region is a circular geofence trigger. Region alerts repeat for the
// lifetime of the region until canceled.
type Region struct {
	Latitude      float64
	Longitude     float64
	Radius        float64
	NotifyOnEntry bool
	NotifyOnExit  bool
}

// AlertRequest describes one device alert. Exactly one of FireAt and Region
// is set: FireAt is a one-shot calendar trigger, Region a repeating geofence.
type AlertRequest struct {
	ID     string
	Title  string
	Body   string
	FireAt *time.Time
	Region *Region
}

// AlertCenter is the device alert registry. Add replaces any pending request
// with the same ID; when alert permission has not been granted, Add drops the
// request silently instead of failing.
type AlertCenter interface {
	Add(ctx context.Context, req AlertRequest) error
	Remove(ids ...string)
	Pending() []AlertRequest
	Authorized() bool
}

// AlertSink receives alerts the moment they fire.
type AlertSink interface {
	Deliver(ctx context.Context, req AlertRequest)
}

type Scheduler interface {
	Schedule(ctx context.Context, todo domain.Todo)
	Cancel(todo domain.Todo)
}
