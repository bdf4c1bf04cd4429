// Package progress persists learner state: the current week, the L1 support
// toggle and the review records. Values are stored as strings under three
// keys per learner; anything malformed on load falls back to its default.
package progress

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/p-n-ai/word-forge/internal/review"
)

// Keys of the persisted values.
const (
	KeyCurrentWeek   = "currentWeek"
	KeyShowL1Support = "showL1Support"
	KeyReviewItems   = "reviewItems"
)

// ErrCorruptState marks a stored value that cannot be decoded.
var ErrCorruptState = errors.New("corrupt persisted state")

//go:embed reviewitems.schema.json
var reviewItemsSchema string

// State is the persisted part of a learner session.
type State struct {
	CurrentWeek   int             `json:"currentWeek"`
	ShowL1Support bool            `json:"showL1Support"`
	ReviewItems   []review.Record `json:"reviewItems"`
}

// DefaultState is the state of a learner with nothing saved.
func DefaultState() State {
	return State{CurrentWeek: 1, ReviewItems: []review.Record{}}
}

// Store loads and saves learner state.
type Store interface {
	Load(ctx context.Context, learnerID string) (State, error)
	Save(ctx context.Context, learnerID string, s State) error
}

// Encode renders the state as its three stored string values.
func Encode(s State) (map[string]string, error) {
	items := s.ReviewItems
	if items == nil {
		items = []review.Record{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("marshal review items: %w", err)
	}
	return map[string]string{
		KeyCurrentWeek:   strconv.Itoa(s.CurrentWeek),
		KeyShowL1Support: strconv.FormatBool(s.ShowL1Support),
		KeyReviewItems:   string(data),
	}, nil
}

// Decode rebuilds a state from stored values. Missing keys take their
// defaults silently; malformed ones take their defaults with a warning.
func Decode(learnerID string, raw map[string]string) State {
	s := DefaultState()

	if v, ok := raw[KeyCurrentWeek]; ok {
		week, err := DecodeWeek(v)
		if err != nil {
			slog.Warn("ignoring stored week", "learner_id", learnerID, "error", err)
		} else {
			s.CurrentWeek = week
		}
	}

	if v, ok := raw[KeyShowL1Support]; ok {
		s.ShowL1Support = DecodeBool(v)
	}

	if v, ok := raw[KeyReviewItems]; ok {
		items, err := DecodeReviewItems([]byte(v))
		if err != nil {
			slog.Warn("ignoring stored review items", "learner_id", learnerID, "error", err)
		} else {
			s.ReviewItems = items
		}
	}

	return s
}

// DecodeWeek parses a stored week number, which must be positive.
func DecodeWeek(v string) (int, error) {
	week, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, fmt.Errorf("week %q: %w", v, ErrCorruptState)
	}
	if week < 1 {
		return 0, fmt.Errorf("week %d: %w", week, ErrCorruptState)
	}
	return week, nil
}

// DecodeBool treats exactly "true" as true and anything else as false.
func DecodeBool(v string) bool {
	return v == "true"
}

// DecodeReviewItems validates stored review items against the schema before
// unmarshalling them.
func DecodeReviewItems(data []byte) ([]review.Record, error) {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(reviewItemsSchema),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return nil, fmt.Errorf("review items: %v: %w", err, ErrCorruptState)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return nil, fmt.Errorf("review items: %s: %w", strings.Join(msgs, "; "), ErrCorruptState)
	}

	var items []review.Record
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("review items: %v: %w", err, ErrCorruptState)
	}
	return items, nil
}
