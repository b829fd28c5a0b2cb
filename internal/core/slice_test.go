package core

import (
	"errors"
	"testing"

	"github.com/comalice/storex/internal/draft"
	"github.com/comalice/storex/internal/primitives"
)

func counterSlice(t *testing.T) *Slice {
	t.Helper()
	s, err := CreateSlice(SliceConfig{
		Name:         "counter",
		InitialState: map[string]any{"value": 0},
		Reducers: map[string]HandlerFunc{
			"increment": func(d *draft.Map, _ primitives.Action) error {
				d.Set("value", d.Int("value")+1)
				return nil
			},
			"incrementByAmount": func(d *draft.Map, a primitives.Action) error {
				d.Set("value", d.Int("value")+a.Payload.(int))
				return nil
			},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestCreateSlice_ActionCreators(t *testing.T) {
	s := counterSlice(t)

	if len(s.Actions) != 2 {
		t.Fatalf("got %d action creators, want 2", len(s.Actions))
	}
	if got := s.Actions["increment"](nil).Type; got != "counter/increment" {
		t.Errorf("got Type=%q want counter/increment", got)
	}
	if got := s.Actions["incrementByAmount"](5); got.Payload != 5 {
		t.Errorf("got Payload=%v want 5", got.Payload)
	}
}

func TestCreateSlice_Validation(t *testing.T) {
	noop := func(d *draft.Map, _ primitives.Action) error { return nil }
	cases := []struct {
		name string
		cfg  SliceConfig
	}{
		{"empty name", SliceConfig{InitialState: map[string]any{}}},
		{"slash in name", SliceConfig{Name: "a/b", InitialState: map[string]any{}}},
		{"nil initial state", SliceConfig{Name: "a"}},
		{"empty handler name", SliceConfig{
			Name: "a", InitialState: map[string]any{},
			Reducers: map[string]HandlerFunc{"": noop},
		}},
		{"slash in handler name", SliceConfig{
			Name: "a", InitialState: map[string]any{},
			Reducers: map[string]HandlerFunc{"x/y": noop},
		}},
		{"nil handler", SliceConfig{
			Name: "a", InitialState: map[string]any{},
			Reducers: map[string]HandlerFunc{"x": nil},
		}},
		{"nil extra case", SliceConfig{
			Name: "a", InitialState: map[string]any{},
			ExtraReducers: map[string]HandlerFunc{"other/x": nil},
		}},
	}
	for _, c := range cases {
		if _, err := CreateSlice(c.cfg); err == nil {
			t.Errorf("%s: CreateSlice succeeded, want error", c.name)
		}
	}
}

func TestSliceReducer_CounterScenario(t *testing.T) {
	s := counterSlice(t)

	state, err := s.Reducer.Reducer(nil, s.Actions["increment"](nil))
	if err != nil {
		t.Fatal(err)
	}
	state, err = s.Reducer.Reducer(state, s.Actions["incrementByAmount"](5))
	if err != nil {
		t.Fatal(err)
	}
	if got := state.(map[string]any)["value"]; got != 6 {
		t.Errorf("got value=%v want 6", got)
	}
	if s.Reducer.InitialState["value"] != 0 {
		t.Error("initial state was mutated")
	}
}

func TestSliceReducer_UnmatchedActionPassesThrough(t *testing.T) {
	s := counterSlice(t)
	prev := map[string]any{"value": 3}

	state, err := s.Reducer.Reducer(prev, primitives.NewAction("other/noop", nil))
	if err != nil {
		t.Fatal(err)
	}
	if !draft.Identical(state, prev) {
		t.Error("unmatched action did not pass state through unchanged")
	}
}

func TestSliceReducer_NilStateUsesInitial(t *testing.T) {
	s := counterSlice(t)
	state, err := s.Reducer.Reducer(nil, primitives.NewAction("other/noop", nil))
	if err != nil {
		t.Fatal(err)
	}
	if !draft.Identical(state, s.Reducer.InitialState) {
		t.Error("nil state did not fall back to the initial state")
	}
}

func TestSliceReducer_HandlerErrorPropagatesUnwrapped(t *testing.T) {
	fault := errors.New("handler fault")
	s, err := CreateSlice(SliceConfig{
		Name:         "faulty",
		InitialState: map[string]any{"value": 0},
		Reducers: map[string]HandlerFunc{
			"explode": func(d *draft.Map, _ primitives.Action) error {
				d.Set("value", 1)
				return fault
			},
		},
	})
	if err != nil {
		t.Fatal(err)
	}

	prev := map[string]any{"value": 0}
	if _, err := s.Reducer.Reducer(prev, s.Actions["explode"](nil)); err != fault {
		t.Errorf("got err=%v want the handler's own error", err)
	}
	if prev["value"] != 0 {
		t.Error("failed handler mutated the previous state")
	}
}

func TestSliceReducer_ExtraReducers(t *testing.T) {
	s, err := CreateSlice(SliceConfig{
		Name:         "audit",
		InitialState: map[string]any{"count": 0},
		ExtraReducers: map[string]HandlerFunc{
			"counter/increment": func(d *draft.Map, _ primitives.Action) error {
				d.Set("count", d.Int("count")+1)
				return nil
			},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(s.Actions) != 0 {
		t.Error("extra cases must not produce action creators")
	}

	state, err := s.Reducer.Reducer(nil, primitives.NewAction("counter/increment", nil))
	if err != nil {
		t.Fatal(err)
	}
	if got := state.(map[string]any)["count"]; got != 1 {
		t.Errorf("got count=%v want 1", got)
	}
}

func TestSliceReducer_ExtraCaseOverridesOwnHandler(t *testing.T) {
	// Colliding registrations overwrite rather than merge; extra cases are
	// registered after the slice's own handlers.
	s, err := CreateSlice(SliceConfig{
		Name:         "dup",
		InitialState: map[string]any{"winner": ""},
		Reducers: map[string]HandlerFunc{
			"mark": func(d *draft.Map, _ primitives.Action) error {
				d.Set("winner", "own")
				return nil
			},
		},
		ExtraReducers: map[string]HandlerFunc{
			"dup/mark": func(d *draft.Map, _ primitives.Action) error {
				d.Set("winner", "extra")
				return nil
			},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	state, err := s.Reducer.Reducer(nil, s.Actions["mark"](nil))
	if err != nil {
		t.Fatal(err)
	}
	if got := state.(map[string]any)["winner"]; got != "extra" {
		t.Errorf("got winner=%v want extra", got)
	}
}

func TestSliceReducer_DefaultCaseCommitsOnlyChanges(t *testing.T) {
	s, err := CreateSlice(SliceConfig{
		Name:         "tracker",
		InitialState: map[string]any{"last": ""},
		Default: func(d *draft.Map, a primitives.Action) error {
			if a.Payload == nil {
				d.Set("last", d.String("last")) // effective no-op
				return nil
			}
			d.Set("last", a.Type)
			return nil
		},
	})
	if err != nil {
		t.Fatal(err)
	}

	prev := map[string]any{"last": ""}
	state, err := s.Reducer.Reducer(prev, primitives.NewAction("anything/noop", nil))
	if err != nil {
		t.Fatal(err)
	}
	if !draft.Identical(state, prev) {
		t.Error("no-op default case committed a new state object")
	}

	state, err = s.Reducer.Reducer(prev, primitives.NewAction("anything/seen", 1))
	if err != nil {
		t.Fatal(err)
	}
	if draft.Identical(state, prev) {
		t.Fatal("changing default case did not commit")
	}
	if got := state.(map[string]any)["last"]; got != "anything/seen" {
		t.Errorf("got last=%v want anything/seen", got)
	}
}

func TestSliceReducer_ReplaceCommitsVerbatim(t *testing.T) {
	replacement := map[string]any{"value": 100}
	s, err := CreateSlice(SliceConfig{
		Name:         "resettable",
		InitialState: map[string]any{"value": 0},
		Reducers: map[string]HandlerFunc{
			"reset": func(d *draft.Map, _ primitives.Action) error {
				d.Replace(replacement)
				return nil
			},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	state, err := s.Reducer.Reducer(map[string]any{"value": 42}, s.Actions["reset"](nil))
	if err != nil {
		t.Fatal(err)
	}
	if !draft.Identical(state, replacement) {
		t.Error("replacement value was not committed verbatim")
	}
}
