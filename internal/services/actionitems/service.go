package actionsvc

import (
	"context"
	"strings"
	"time"

	"github.com/LynchzDEV/CommitQ/internal/hub"
	"github.com/LynchzDEV/CommitQ/internal/runtime"
	"github.com/LynchzDEV/CommitQ/internal/team"
	"github.com/LynchzDEV/CommitQ/pkg/id"
)

type Service struct{ rt *runtime.Runtime }

func New(rt *runtime.Runtime) *Service { return &Service{rt: rt} }

// IDData is the payload of item-completed and item-removed events.
type IDData struct {
	ID string `json:"id"`
}

// Add validates and appends a new pending item, then broadcasts.
func (s *Service) Add(ctx context.Context, teamID, title, description string) (team.ActionItem, error) {
	title = strings.TrimSpace(title)
	description = strings.TrimSpace(description)
	if title == "" {
		return team.ActionItem{}, ErrTitleEmpty
	}
	limits := s.rt.Config().Limits
	if limits.TitleMaxLen > 0 && len([]rune(title)) > limits.TitleMaxLen {
		return team.ActionItem{}, ErrTitleTooLong
	}
	if limits.DescriptionMaxLen > 0 && len([]rune(description)) > limits.DescriptionMaxLen {
		return team.ActionItem{}, ErrDescriptionTooLong
	}

	st := s.rt.Teams().Team(teamID)
	st.Lock()
	defer st.Unlock()

	item := &team.ActionItem{
		ID:          id.Next(),
		Title:       title,
		Description: description,
		CreatedAt:   time.Now(),
		Team:        teamID,
	}
	st.Action.Items = append(st.Action.Items, item)

	out := *item
	ch := hub.ActionItemsChannel(teamID)
	s.rt.Hub().Broadcast(ch, hub.Event{Type: "actionItems:updated", Data: st.Action.Snapshot()})
	s.rt.Hub().Broadcast(ch, hub.Event{Type: "actionItems:item-added", Data: out})
	return out, nil
}

// Complete marks the item done, recording the completion time and the
// optional proof image verbatim. Completing an already-completed item
// refreshes the completion fields.
func (s *Service) Complete(ctx context.Context, teamID, itemID, image, imageName string) error {
	if err := s.validateImage(image); err != nil {
		return err
	}

	st := s.rt.Teams().Team(teamID)
	st.Lock()
	defer st.Unlock()

	item := st.Action.Find(itemID)
	if item == nil {
		return ErrNotFound
	}
	now := time.Now()
	item.Completed = true
	item.CompletedAt = &now
	item.CompletionImage = image
	item.CompletionImageName = imageName

	ch := hub.ActionItemsChannel(teamID)
	s.rt.Hub().Broadcast(ch, hub.Event{Type: "actionItems:updated", Data: st.Action.Snapshot()})
	s.rt.Hub().Broadcast(ch, hub.Event{Type: "actionItems:item-completed", Data: IDData{ID: itemID}})
	return nil
}

// Uncomplete restores the item to its pre-completion state, clearing the
// flag, the timestamp, and any stored image.
func (s *Service) Uncomplete(ctx context.Context, teamID, itemID string) error {
	st := s.rt.Teams().Team(teamID)
	st.Lock()
	defer st.Unlock()

	item := st.Action.Find(itemID)
	if item == nil {
		return ErrNotFound
	}
	item.Completed = false
	item.CompletedAt = nil
	item.CompletionImage = ""
	item.CompletionImageName = ""

	s.rt.Hub().Broadcast(hub.ActionItemsChannel(teamID), hub.Event{Type: "actionItems:updated", Data: st.Action.Snapshot()})
	return nil
}

// Remove deletes the item.
func (s *Service) Remove(ctx context.Context, teamID, itemID string) error {
	st := s.rt.Teams().Team(teamID)
	st.Lock()
	defer st.Unlock()

	i := st.Action.Index(itemID)
	if i < 0 {
		return ErrNotFound
	}
	st.Action.Items = append(st.Action.Items[:i], st.Action.Items[i+1:]...)

	ch := hub.ActionItemsChannel(teamID)
	s.rt.Hub().Broadcast(ch, hub.Event{Type: "actionItems:updated", Data: st.Action.Snapshot()})
	s.rt.Hub().Broadcast(ch, hub.Event{Type: "actionItems:item-removed", Data: IDData{ID: itemID}})
	return nil
}

// State returns a snapshot of the team's action items.
func (s *Service) State(ctx context.Context, teamID string) team.ActionItemsSnapshot {
	st := s.rt.Teams().Team(teamID)
	st.Lock()
	defer st.Unlock()
	return st.Action.Snapshot()
}

// Pending returns the not-yet-completed items in insertion order.
func (s *Service) Pending(ctx context.Context, teamID string) []team.ActionItem {
	return s.filter(teamID, false)
}

// Completed returns the completed items in insertion order.
func (s *Service) Completed(ctx context.Context, teamID string) []team.ActionItem {
	return s.filter(teamID, true)
}

func (s *Service) filter(teamID string, completed bool) []team.ActionItem {
	st := s.rt.Teams().Team(teamID)
	st.Lock()
	defer st.Unlock()
	snap := st.Action.Snapshot()
	out := make([]team.ActionItem, 0, len(snap.Items))
	for _, it := range snap.Items {
		if it.Completed == completed {
			out = append(out, it)
		}
	}
	return out
}

// validateImage applies defensive checks to a proof image carried as a data
// URL. Empty is fine. The payload stays base64 in state and on the wire, so
// the size bound is checked against the decoded length estimate.
func (s *Service) validateImage(image string) error {
	if image == "" {
		return nil
	}
	if !strings.HasPrefix(image, "data:image/") {
		return ErrImageNotImage
	}
	max := s.rt.Config().Limits.ImageMaxBytes
	if max <= 0 {
		return nil
	}
	payload := image
	if i := strings.IndexByte(image, ','); i >= 0 {
		payload = image[i+1:]
	}
	if len(payload)/4*3 > max {
		return ErrImageTooLarge
	}
	return nil
}
