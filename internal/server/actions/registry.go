package actions

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/LynchzDEV/CommitQ/internal/runtime"
	actionsvc "github.com/LynchzDEV/CommitQ/internal/services/actionitems"
	queuesvc "github.com/LynchzDEV/CommitQ/internal/services/queue"
)

// ErrUnknownAction is returned for an action name no handler claims.
var ErrUnknownAction = errors.New("Unknown action")

// Request is the envelope every mutation arrives in. Team may ride either
// on the envelope or inside Data; Data wins when both are set.
type Request struct {
	Action string          `json:"action"`
	Team   string          `json:"team,omitempty"`
	Data   json.RawMessage `json:"data"`
}

// Response acknowledges a dispatched action. Item carries the created item
// for add actions; Data carries a state snapshot for get-state actions.
type Response struct {
	Success bool `json:"success"`
	Item    any  `json:"item,omitempty"`
	Data    any  `json:"data,omitempty"`
}

// Registry owns both engines and routes actions to them.
type Registry struct {
	rt     *runtime.Runtime
	queue  *queuesvc.Service
	action *actionsvc.Service
}

// New builds a Registry with fresh engine instances over the runtime.
func New(rt *runtime.Runtime) *Registry {
	return &Registry{rt: rt, queue: queuesvc.New(rt), action: actionsvc.New(rt)}
}

// Queue exposes the queue engine to transport bindings.
func (g *Registry) Queue() *queuesvc.Service { return g.queue }

// ActionItems exposes the action-item engine to transport bindings.
func (g *Registry) ActionItems() *actionsvc.Service { return g.action }

// payload is the union of every action's data fields.
type payload struct {
	Team      string `json:"team"`
	ID        string `json:"id"`
	Name      string `json:"name"`
	FastTrack bool   `json:"fastTrack"`
	Duration  int64  `json:"duration"`
	Title     string `json:"title"`
	Desc      string `json:"description"`
	Image     string `json:"image"`
	ImageName string `json:"imageName"`
}

// team resolves the effective team, falling back to the configured default.
func (g *Registry) team(p payload, envelope string) string {
	if p.Team != "" {
		return p.Team
	}
	if envelope != "" {
		return envelope
	}
	return g.rt.Config().DefaultTeam
}

// Dispatch decodes the request data and invokes the matching engine call.
func (g *Registry) Dispatch(ctx context.Context, req Request) (Response, error) {
	var p payload
	if len(req.Data) > 0 {
		if err := json.Unmarshal(req.Data, &p); err != nil {
			return Response{}, err
		}
	}
	team := g.team(p, req.Team)

	switch req.Action {
	case "queue:add":
		item, err := g.queue.Add(ctx, team, p.Name, p.FastTrack)
		if err != nil {
			return Response{}, err
		}
		return Response{Success: true, Item: item}, nil
	case "queue:remove":
		if err := g.queue.Remove(ctx, team, p.ID); err != nil {
			return Response{}, err
		}
		return Response{Success: true}, nil
	case "queue:start-timer":
		d := time.Duration(p.Duration) * time.Millisecond
		if err := g.queue.StartTimer(ctx, team, p.ID, d); err != nil {
			return Response{}, err
		}
		return Response{Success: true}, nil
	case "queue:stop-timer":
		if err := g.queue.StopTimer(ctx, team, p.ID); err != nil {
			return Response{}, err
		}
		return Response{Success: true}, nil
	case "queue:get-state":
		return Response{Success: true, Data: g.queue.State(ctx, team)}, nil

	case "actionItems:add":
		item, err := g.action.Add(ctx, team, p.Title, p.Desc)
		if err != nil {
			return Response{}, err
		}
		return Response{Success: true, Item: item}, nil
	case "actionItems:complete":
		if err := g.action.Complete(ctx, team, p.ID, p.Image, p.ImageName); err != nil {
			return Response{}, err
		}
		return Response{Success: true}, nil
	case "actionItems:uncomplete":
		if err := g.action.Uncomplete(ctx, team, p.ID); err != nil {
			return Response{}, err
		}
		return Response{Success: true}, nil
	case "actionItems:remove":
		if err := g.action.Remove(ctx, team, p.ID); err != nil {
			return Response{}, err
		}
		return Response{Success: true}, nil
	case "actionItems:get-state":
		return Response{Success: true, Data: g.action.State(ctx, team)}, nil
	}
	return Response{}, ErrUnknownAction
}

// Status maps an engine error to its HTTP status code. Absence is 404,
// everything else the client sent wrong is 400.
func Status(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, queuesvc.ErrNotFound),
		errors.Is(err, queuesvc.ErrNoActiveTimer),
		errors.Is(err, actionsvc.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusBadRequest
	}
}
