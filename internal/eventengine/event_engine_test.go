package eventengine

import (
	"sync"
	"testing"
	"time"

	"github.com/Aym0707/aymstore/internal/eventengine/event"
)

func Test_eventEngine(t *testing.T) {
	doneCh := make(chan struct{})
	internalSrvWG := sync.WaitGroup{}

	engine := NewEventEngine(
		&EventEngineConfig{
			DoneCh:        doneCh,
			InternalSrvWG: &internalSrvWG,
		},
	)

	testEventName := event.EventName("test.event.engine.event.name")
	engine.RegisterEvents(testEventName)

	// two subscribers on the same event, each with its own addressCh.
	subscriberAddressCh1 := make(chan any, 2)
	err := engine.Subscribe(
		testEventName,
		&event.Subscriber{
			Name:      "test_subscriber_name.1",
			AddressCh: subscriberAddressCh1,
		},
	)
	if err != nil {
		t.Fatal(err)
	}

	subscriberAddressCh2 := make(chan any, 2)
	err = engine.Subscribe(
		testEventName,
		&event.Subscriber{
			Name:      "test_subscriber_name.2",
			AddressCh: subscriberAddressCh2,
		},
	)
	if err != nil {
		t.Fatal(err)
	}

	wantPayload := "payload-1"
	err = engine.Publish(
		&event.Event{
			Name:    testEventName,
			Payload: wantPayload,
		},
	)
	if err != nil {
		t.Fatal(err)
	}

	for i, addressCh := range []chan any{subscriberAddressCh1, subscriberAddressCh2} {
		select {
		case got := <-addressCh:
			if got != wantPayload {
				t.Errorf(
					"subscriber %d got payload %v; want %v",
					i+1, got, wantPayload,
				)
			}

		case <-time.After(2 * time.Second):
			t.Fatalf("subscriber %d never received the published event", i+1)
		}
	}

	// publishing to an unregistered event must fail loudly.
	err = engine.Publish(
		&event.Event{
			Name: "never.registered",
		},
	)
	if err == nil {
		t.Error("expected an error publishing an unregistered event")
	}

	if err := engine.Subscribe(
		"never.registered",
		&event.Subscriber{
			Name:      "test_subscriber_name.3",
			AddressCh: make(chan any, 1),
		},
	); err == nil {
		t.Error("expected an error subscribing to an unregistered event")
	}

	// done signal drains the engine and closes every subscriber addressCh.
	close(doneCh)
	internalSrvWG.Wait()

	if _, isOpened := <-subscriberAddressCh1; isOpened {
		t.Error("subscriber 1 addressCh should be closed after shutdown")
	}
	if _, isOpened := <-subscriberAddressCh2; isOpened {
		t.Error("subscriber 2 addressCh should be closed after shutdown")
	}
}

func Test_eventEngine_sharedAddressCh(t *testing.T) {
	doneCh := make(chan struct{})
	internalSrvWG := sync.WaitGroup{}

	engine := NewEventEngine(
		&EventEngineConfig{
			DoneCh:        doneCh,
			InternalSrvWG: &internalSrvWG,
		},
	)

	eventA := event.EventName("test.shared.a")
	eventB := event.EventName("test.shared.b")
	engine.RegisterEvents(eventA, eventB)

	// one subscriber listening to two events over a single channel, the
	// shape the cache writer uses. Shutdown must close the shared channel
	// exactly once.
	sharedCh := make(chan any, 4)
	for _, name := range []event.EventName{eventA, eventB} {
		err := engine.Subscribe(
			name,
			&event.Subscriber{
				Name:      "test_subscriber_name.shared",
				AddressCh: sharedCh,
			},
		)
		if err != nil {
			t.Fatal(err)
		}
	}

	if err := engine.Publish(&event.Event{Name: eventA, Payload: "a"}); err != nil {
		t.Fatal(err)
	}
	if err := engine.Publish(&event.Event{Name: eventB, Payload: "b"}); err != nil {
		t.Fatal(err)
	}

	got := make([]any, 0, 2)
	for len(got) < 2 {
		select {
		case payload := <-sharedCh:
			got = append(got, payload)

		case <-time.After(2 * time.Second):
			t.Fatalf("shared subscriber received %d of 2 events", len(got))
		}
	}

	close(doneCh)
	internalSrvWG.Wait() // panics here would mean the shared channel was closed twice

	if _, isOpened := <-sharedCh; isOpened {
		t.Error("shared addressCh should be closed after shutdown")
	}
}
