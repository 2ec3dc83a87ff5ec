// Package region contains the delivery-zone reference entity. Regions map
// orders to a chat destination and its today/tomorrow queue topics; they are
// created out-of-band and read-only from the engine's perspective.
package region

import (
	"errors"

	"lastmile/internal/core/domain/model/kernel"
)

// ErrRegionIsNotConstructed is returned when a Region instance was not
// created through the NewRegion factory method.
var ErrRegionIsNotConstructed = errors.New("Region must be created via NewRegion constructor")

// Region is a delivery zone with the chat destination order cards are
// published to. TodayTopicID and TomorrowTopicID address the message threads
// for the today queue and the tomorrow queue respectively.
type Region struct {
	id              kernel.UUID
	name            string
	chatID          string
	todayTopicID    string
	tomorrowTopicID string

	isConstructed bool
}

// NewRegion creates a Region. The chat destination may be empty, in which
// case publish notifications for the region are silently skipped.
func NewRegion(
	id kernel.UUID,
	name string,
	chatID string,
	todayTopicID string,
	tomorrowTopicID string,
) (*Region, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	return &Region{
		id:              id,
		name:            name,
		chatID:          chatID,
		todayTopicID:    todayTopicID,
		tomorrowTopicID: tomorrowTopicID,
		isConstructed:   true,
	}, nil
}

// Validate ensures the Region was created via NewRegion.
func (r *Region) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrRegionIsNotConstructed
	}
	return nil
}

// ID returns the region's unique identifier.
func (r *Region) ID() kernel.UUID {
	return r.id
}

// Name returns the region's display name.
func (r *Region) Name() string {
	return r.name
}

// ChatID returns the chat destination for the region, or "" if unset.
func (r *Region) ChatID() string {
	return r.chatID
}

// TodayTopicID returns the thread for today's queue.
func (r *Region) TodayTopicID() string {
	return r.todayTopicID
}

// TomorrowTopicID returns the thread for the tomorrow queue.
func (r *Region) TomorrowTopicID() string {
	return r.tomorrowTopicID
}
