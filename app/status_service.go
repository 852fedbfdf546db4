package app

import (
	"context"
	"fmt"
	"io"

	"framebias/domain/responses"
	"framebias/internal"
	"framebias/internal/errors"
	"framebias/ports"
)

// StatusService reports how much of a response file has been filled in
type StatusService struct {
	store  ports.ArtifactStorePort
	logger *internal.Logger
	out    io.Writer
}

// NewStatusService creates a status reporter
func NewStatusService(store ports.ArtifactStorePort, logger *internal.Logger, out io.Writer) *StatusService {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	if out == nil {
		out = io.Discard
	}
	return &StatusService{store: store, logger: logger.With("component", "status"), out: out}
}

// Check reads the responses file at path and prints one line per slot
func (s *StatusService) Check(ctx context.Context, path string) (responses.Progress, error) {
	var tmpl responses.Template
	if err := s.store.ReadJSON(ctx, path, &tmpl); err != nil {
		return responses.Progress{}, errors.Wrap(err, "failed to load responses")
	}
	if tmpl.Metadata.ResponsesPerPrompt < 1 {
		return responses.Progress{}, errors.InvalidInput(path + ": metadata.responses_per_prompt must be positive")
	}

	p := tmpl.Progress()
	overfilled := 0
	for _, slot := range p.Slots {
		mark := "  "
		switch {
		case slot.Overfilled():
			mark = "!!"
			overfilled++
		case slot.Missing() == 0:
			mark = "ok"
		}
		fmt.Fprintf(s.out, "[%s] %s_%s %-10s %d/%d\n", mark, slot.HypothesisID, slot.Condition, slot.System, slot.Collected, slot.Expected)
	}

	fmt.Fprintf(s.out, "\nCollected %d of %d responses (%.0f%%)\n", p.Collected, p.Expected, p.Percent())
	if overfilled > 0 {
		s.logger.Warn("%d response lists hold more than %d responses", overfilled, tmpl.Metadata.ResponsesPerPrompt)
	}
	if p.Complete() {
		fmt.Fprintln(s.out, "✅ All responses collected")
	}
	return p, nil
}
