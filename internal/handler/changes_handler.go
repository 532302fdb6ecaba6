package handler

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"

	"welile-backend/internal/service/realtime"
)

// ChangesHandler streams change signals to clients over server-sent events.
// Clients refetch affected resources on each signal.
type ChangesHandler struct {
	subscriber *realtime.Subscriber
}

func NewChangesHandler(subscriber *realtime.Subscriber) *ChangesHandler {
	return &ChangesHandler{subscriber: subscriber}
}

func (h *ChangesHandler) Stream(c *fiber.Ctx) error {
	c.Set("Content-Type", "text/event-stream")
	c.Set("Cache-Control", "no-cache")
	c.Set("Connection", "keep-alive")

	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		_ = h.subscriber.Listen(ctx, func(change realtime.Change) {
			payload, err := json.Marshal(change)
			if err != nil {
				return
			}
			fmt.Fprintf(w, "data: %s\n\n", payload)
			if err := w.Flush(); err != nil {
				// Client went away.
				cancel()
			}
		})
	}))

	return nil
}
