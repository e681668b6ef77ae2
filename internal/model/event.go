// internal/model/event.go
package model

import (
    "time"

    "github.com/google/uuid"
)

const (
    TopicClienteCreado    = "cliente.creado"
    TopicClienteEliminado = "cliente.eliminado"
)

// Event announces a change to the collection after it has been persisted.
type Event struct {
    ID         string    `json:"id"`
    Type       string    `json:"type"`
    OccurredAt time.Time `json:"occurred_at"`
    Cliente    Customer  `json:"cliente"`
}

func NewEvent(topic string, c Customer) Event {
    return Event{
        ID:         uuid.NewString(),
        Type:       topic,
        OccurredAt: time.Now().UTC(),
        Cliente:    c,
    }
}
