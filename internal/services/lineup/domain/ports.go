package domain

import "context"

// ServicePort defines the service contract for lineup
type ServicePort interface {
	Lineup(ctx context.Context, channelID int64) (Lineup, error)
}
