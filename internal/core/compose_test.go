package core

import (
	"testing"

	"github.com/comalice/storex/internal/primitives"
)

func TestCompose_ZeroLinksIsIdentity(t *testing.T) {
	var got []string
	base := func(a primitives.Action) error {
		got = append(got, "base:"+a.Type)
		return nil
	}
	if err := Compose()(base)(primitives.NewAction("x", nil)); err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0] != "base:x" {
		t.Errorf("got %v, want [base:x]", got)
	}
}

func TestCompose_SingleLinkUnchanged(t *testing.T) {
	link := func(next DispatchFunc) DispatchFunc { return next }
	composed := Compose(link)
	base := func(primitives.Action) error { return nil }
	if composed(base)(primitives.NewAction("x", nil)) != nil {
		t.Error("single-link composition altered behavior")
	}
}

func taggedLink(tag string, log *[]string) ChainLink {
	return func(next DispatchFunc) DispatchFunc {
		return func(a primitives.Action) error {
			*log = append(*log, tag+"-enter")
			err := next(a)
			*log = append(*log, tag+"-exit")
			return err
		}
	}
}

func TestCompose_RightToLeftOrder(t *testing.T) {
	var log []string
	base := func(primitives.Action) error {
		log = append(log, "base")
		return nil
	}

	composed := Compose(taggedLink("M1", &log), taggedLink("M2", &log))
	if err := composed(base)(primitives.NewAction("x", nil)); err != nil {
		t.Fatal(err)
	}

	want := []string{"M1-enter", "M2-enter", "base", "M2-exit", "M1-exit"}
	if len(log) != len(want) {
		t.Fatalf("got %v, want %v", log, want)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Fatalf("got %v, want %v", log, want)
		}
	}
}

func TestCompose_ShortCircuitSkipsInnerStages(t *testing.T) {
	var log []string
	drop := func(next DispatchFunc) DispatchFunc {
		return func(a primitives.Action) error {
			log = append(log, "dropped")
			return nil // never calls next
		}
	}
	base := func(primitives.Action) error {
		log = append(log, "base")
		return nil
	}

	composed := Compose(taggedLink("M1", &log), ChainLink(drop))
	if err := composed(base)(primitives.NewAction("x", nil)); err != nil {
		t.Fatal(err)
	}
	want := []string{"M1-enter", "dropped", "M1-exit"}
	for i := range want {
		if i >= len(log) || log[i] != want[i] {
			t.Fatalf("got %v, want %v", log, want)
		}
	}
	if len(log) != len(want) {
		t.Fatalf("got %v, want %v", log, want)
	}
}
