package websocket

import (
	"encoding/json"
	"testing"
	"time"

	"spa-registry-be/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testLogger struct{}

func (testLogger) Debug(string, string, map[string]interface{}) {}
func (testLogger) Info(string, string, map[string]interface{})  {}
func (testLogger) Warn(string, string, map[string]interface{})  {}
func (testLogger) Error(string, string, map[string]interface{}) {}
func (testLogger) Sync() error                                  { return nil }

func TestHubPublishDeliversToTopic(t *testing.T) {
	hub := NewHub(nil, testLogger{})
	go hub.Run()

	client := &Client{Hub: hub, Topics: []string{"spa:1"}, Send: make(chan []byte, 4)}
	hub.register <- client

	notification := entity.Notification{Id: 9, Title: "Therapist approved", RecipientType: entity.RecipientTypeSpa, RecipientId: 1}

	// Registration is asynchronous; retry until the subscription is live.
	require.Eventually(t, func() bool {
		hub.Publish("spa:1", notification)
		select {
		case raw := <-client.Send:
			var envelope struct {
				Type string              `json:"type"`
				Data entity.Notification `json:"data"`
			}
			require.NoError(t, json.Unmarshal(raw, &envelope))
			assert.Equal(t, "notification", envelope.Type)
			assert.Equal(t, "Therapist approved", envelope.Data.Title)
			return true
		default:
			return false
		}
	}, time.Second, 10*time.Millisecond)
}

func TestHubPublishIgnoresOtherTopics(t *testing.T) {
	hub := NewHub(nil, testLogger{})
	go hub.Run()

	client := &Client{Hub: hub, Topics: []string{"spa:1"}, Send: make(chan []byte, 4)}
	hub.register <- client

	// Let the registration land, then publish elsewhere.
	time.Sleep(20 * time.Millisecond)
	hub.Publish("spa:2", entity.Notification{Title: "not yours"})
	hub.Publish("role:lsa", entity.Notification{Title: "not yours either"})

	select {
	case <-client.Send:
		t.Fatal("client received a message for a foreign topic")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHubPublishWhileClientDisconnects(t *testing.T) {
	hub := NewHub(nil, testLogger{})
	go hub.Run()

	stayer := &Client{Hub: hub, Topics: []string{"spa:1"}, Send: make(chan []byte, 4)}
	leaver := &Client{Hub: hub, Topics: []string{"spa:1"}, Send: make(chan []byte, 4)}
	hub.register <- stayer
	hub.register <- leaver

	// A session dropping mid-publish is routine; it must never take the hub
	// down. Hammer the topic while the second client unregisters.
	published := make(chan struct{})
	go func() {
		defer close(published)
		for i := 0; i < 500; i++ {
			hub.Publish("spa:1", entity.Notification{Title: "Payment settled", RecipientType: entity.RecipientTypeSpa, RecipientId: 1})
		}
	}()

	hub.unregister <- leaver
	<-published

	// The surviving client still receives after the churn.
	for len(stayer.Send) > 0 {
		<-stayer.Send
	}
	require.Eventually(t, func() bool {
		hub.Publish("spa:1", entity.Notification{Title: "still here"})
		select {
		case <-stayer.Send:
			return true
		default:
			return false
		}
	}, time.Second, 10*time.Millisecond)
}

func TestHubMultiTopicClient(t *testing.T) {
	hub := NewHub(nil, testLogger{})
	go hub.Run()

	// An association admin holds a personal topic plus the role room.
	client := &Client{Hub: hub, Topics: []string{"user:7", "role:lsa"}, Send: make(chan []byte, 4)}
	hub.register <- client

	require.Eventually(t, func() bool {
		hub.Publish("role:lsa", entity.Notification{Title: "Bank transfer awaiting review"})
		select {
		case <-client.Send:
			return true
		default:
			return false
		}
	}, time.Second, 10*time.Millisecond)
}
