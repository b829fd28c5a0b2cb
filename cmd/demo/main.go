package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/comalice/storex"
)

func main() {
	counter, err := storex.CreateSlice(storex.SliceConfig{
		Name:         "counter",
		InitialState: map[string]any{"value": 0},
		Reducers: map[string]storex.HandlerFunc{
			"increment": func(d *storex.Draft, _ storex.Action) error {
				d.Set("value", d.Int("value")+1)
				return nil
			},
			"incrementByAmount": func(d *storex.Draft, a storex.Action) error {
				d.Set("value", d.Int("value")+a.Payload.(int))
				return nil
			},
		},
	})
	if err != nil {
		panic(err)
	}

	todos, err := storex.CreateSlice(storex.SliceConfig{
		Name:         "todos",
		InitialState: map[string]any{"items": []any{}},
		Reducers: map[string]storex.HandlerFunc{
			"add": func(d *storex.Draft, a storex.Action) error {
				d.List("items").Append(a.Payload)
				return nil
			},
		},
	})
	if err != nil {
		panic(err)
	}

	persister, err := storex.NewYAMLPersister(filepath.Join(os.TempDir(), "storex-demo"))
	if err != nil {
		panic(err)
	}

	publishChan := make(chan storex.PublishedAction, 100)
	publisher := storex.NewChannelPublisher(publishChan)

	registry := storex.NewMemoryRegistry()

	store, err := storex.NewStore(map[string]storex.ReducerConfig{
		"counter": counter.Reducer,
		"todos":   todos.Reducer,
	},
		storex.WithStoreID("demo"),
		storex.WithMiddleware(storex.NewLoggingMiddleware(log.Default())),
		storex.WithPersister(persister),
		storex.WithPublisher(publisher),
		storex.WithRegistry(registry),
	)
	if err != nil {
		panic(err)
	}

	store.Subscribe(func() {
		state, err := store.State()
		if err != nil {
			return
		}
		fmt.Println("committed:", state)
	})

	actions := []storex.Action{
		counter.Actions["increment"](nil),
		counter.Actions["incrementByAmount"](5),
		todos.Actions["add"]("ship the demo"),
	}
	for _, a := range actions {
		if err := store.Dispatch(a); err != nil {
			fmt.Printf("Dispatch error: %v\n", err)
		}
	}

	fmt.Println("\n--- Published actions ---")
	for range actions {
		p := <-publishChan
		fmt.Printf("%s @ %s\n", p.Action.Type, p.Metadata.Timestamp.Format("15:04:05.000"))
	}

	versions, err := registry.ListVersions(context.Background(), store.ID())
	if err != nil {
		panic(err)
	}
	fmt.Println("\n--- Registered versions (newest first) ---")
	for _, v := range versions {
		fmt.Println(v)
	}

	snapshot, err := persister.Load(context.Background(), store.ID())
	if err != nil {
		panic(err)
	}
	fmt.Println("\nPersisted state:", snapshot.State)
}
