package socket

// Broadcaster provides the events the console pushes to the dashboard.
type Broadcaster struct {
	hub *Hub
}

func NewBroadcaster(hub *Hub) *Broadcaster {
	return &Broadcaster{hub: hub}
}

// SendToast pushes a toast to the user.
func (b *Broadcaster) SendToast(userID, level, message string) {
	b.hub.SendToUser(userID, MessageToast, map[string]interface{}{
		"level":   level,
		"message": message,
	})
}

// ListReloaded tells the user's dashboard that list (projects, tasks or
// users) was refetched after a mutation. scope narrows it, e.g. a project id
// for its task list.
func (b *Broadcaster) ListReloaded(userID, list, scope string) {
	payload := map[string]interface{}{"list": list}
	if scope != "" {
		payload["scope"] = scope
	}
	b.hub.SendToUser(userID, MessageListReloaded, payload)
}
