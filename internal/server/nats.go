package server

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/nats-io/nats.go"

	"github.com/vinayprograms/edinburgh/internal/logging"
	"github.com/vinayprograms/edinburgh/internal/tools"
)

// Responder answers tool requests on NATS subjects of the form
// <prefix>.<tool>. The request payload is the args JSON object; the reply is
// an Envelope.
type Responder struct {
	tools  *tools.Registry
	prefix string
	logger *logging.Logger
}

// NewResponder creates a responder for every enabled tool in reg.
func NewResponder(reg *tools.Registry, prefix string, logger *logging.Logger) *Responder {
	return &Responder{tools: reg, prefix: prefix, logger: logger}
}

// Subject returns the subject a tool answers on.
func (r *Responder) Subject(tool string) string {
	return r.prefix + "." + tool
}

// HandleMessage executes tool with the JSON args in data and returns the
// encoded Envelope.
func (r *Responder) HandleMessage(ctx context.Context, tool string, data []byte) []byte {
	var args map[string]interface{}
	if len(strings.TrimSpace(string(data))) > 0 {
		if err := json.Unmarshal(data, &args); err != nil {
			return encode(Envelope{Error: "invalid request payload: " + err.Error(), Code: CodeInvalidArgument})
		}
	}

	result, err := r.tools.Execute(ctx, tool, args)
	if err != nil {
		_, env := errorEnvelope(err)
		return encode(env)
	}
	return encode(Envelope{Result: result})
}

// Subscribe registers a handler per enabled tool on nc. Call Drain or
// Unsubscribe on the returned subscriptions to stop.
func (r *Responder) Subscribe(ctx context.Context, nc *nats.Conn) ([]*nats.Subscription, error) {
	var subs []*nats.Subscription
	for _, name := range r.tools.Names() {
		tool := name
		sub, err := nc.Subscribe(r.Subject(tool), func(msg *nats.Msg) {
			if err := msg.Respond(r.HandleMessage(ctx, tool, msg.Data)); err != nil {
				r.logger.Warn("nats reply failed", map[string]interface{}{"subject": msg.Subject, "error": err.Error()})
			}
		})
		if err != nil {
			for _, s := range subs {
				s.Unsubscribe()
			}
			return nil, fmt.Errorf("failed to subscribe to %s: %w", r.Subject(tool), err)
		}
		subs = append(subs, sub)
		r.logger.Info("nats responder subscribed", map[string]interface{}{"subject": r.Subject(tool)})
	}
	return subs, nil
}

// Serve connects to url, subscribes every tool and blocks until ctx is
// cancelled, then drains the connection.
func (r *Responder) Serve(ctx context.Context, url string) error {
	nc, err := nats.Connect(url, nats.Name("edinburgh"))
	if err != nil {
		return fmt.Errorf("failed to connect to nats at %s: %w", url, err)
	}
	if _, err := r.Subscribe(ctx, nc); err != nil {
		nc.Close()
		return err
	}

	<-ctx.Done()
	return nc.Drain()
}

func encode(env Envelope) []byte {
	data, err := json.Marshal(env)
	if err != nil {
		data, _ = json.Marshal(Envelope{Error: "failed to encode result: " + err.Error(), Code: CodeInternal})
	}
	return data
}
