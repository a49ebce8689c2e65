package stream

import (
	"encoding/json"
	"log"

	"github.com/PatF3lix/Mapty-App/internal/session"
	"github.com/PatF3lix/Mapty-App/internal/workout"
)

// UIBridge translates controller render requests into JSON commands on
// the session's command stream. It satisfies the session package's
// MapView and FormView interfaces.
type UIBridge struct {
	hub       *Hub
	sessionID string
}

func NewUIBridge(hub *Hub, sessionID string) *UIBridge {
	return &UIBridge{hub: hub, sessionID: sessionID}
}

type command struct {
	Op         string               `json:"op"`
	Coords     *workout.Coordinates `json:"coords,omitempty"`
	Zoom       int                  `json:"zoom,omitempty"`
	PopupLabel string               `json:"popup_label,omitempty"`
	StyleClass string               `json:"style_class,omitempty"`
	Kind       workout.Kind         `json:"kind,omitempty"`
	Item       *session.ListItem    `json:"item,omitempty"`
	Message    string               `json:"message,omitempty"`
}

func (b *UIBridge) send(cmd command) {
	payload, err := json.Marshal(cmd)
	if err != nil {
		log.Printf("ui command marshal error: %v", err)
		return
	}
	b.hub.Broadcast(b.sessionID, payload)
}

func (b *UIBridge) CenterOn(c workout.Coordinates, zoom int) {
	b.send(command{Op: "center", Coords: &c, Zoom: zoom})
}

func (b *UIBridge) PlaceMarker(c workout.Coordinates, popupLabel, styleClass string) {
	b.send(command{Op: "marker", Coords: &c, PopupLabel: popupLabel, StyleClass: styleClass})
}

func (b *UIBridge) ShowForm() {
	b.send(command{Op: "show_form"})
}

func (b *UIBridge) HideForm() {
	b.send(command{Op: "hide_form"})
}

func (b *UIBridge) ClearForm() {
	b.send(command{Op: "clear_form"})
}

func (b *UIBridge) ToggleVariantFields(kind workout.Kind) {
	b.send(command{Op: "toggle_fields", Kind: kind})
}

func (b *UIBridge) AppendListItem(item session.ListItem) {
	b.send(command{Op: "list_item", Item: &item})
}

func (b *UIBridge) ReportError(msg string) {
	b.send(command{Op: "error", Message: msg})
}
