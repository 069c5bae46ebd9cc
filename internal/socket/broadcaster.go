package socket

import (
	"fmt"
	"log"
)

// Broadcaster provides high-level methods for broadcasting events
type Broadcaster struct {
	hub *Hub
}

// NewBroadcaster creates a new Broadcaster
func NewBroadcaster(hub *Hub) *Broadcaster {
	return &Broadcaster{hub: hub}
}

// ============================================
// Task Broadcasting
// ============================================

// BroadcastTaskCreated broadcasts task creation to project subscribers
func (b *Broadcaster) BroadcastTaskCreated(projectID, taskID string) {
	room := fmt.Sprintf("project:%s", projectID)
	b.hub.SendToRoom(room, MessageTaskCreated, map[string]interface{}{
		"taskId":    taskID,
		"projectId": projectID,
	}, "")
}

// BroadcastTaskUpdated broadcasts task updates to project subscribers
func (b *Broadcaster) BroadcastTaskUpdated(projectID, taskID string) {
	room := fmt.Sprintf("project:%s", projectID)
	b.hub.SendToRoom(room, MessageTaskUpdated, map[string]interface{}{
		"taskId":    taskID,
		"projectId": projectID,
	}, "")
}

// BroadcastTaskDeleted broadcasts task deletion to project subscribers
func (b *Broadcaster) BroadcastTaskDeleted(projectID, taskID string) {
	room := fmt.Sprintf("project:%s", projectID)
	b.hub.SendToRoom(room, MessageTaskDeleted, map[string]interface{}{
		"taskId":    taskID,
		"projectId": projectID,
	}, "")
}

// ============================================
// Progress Broadcasting
// ============================================

// BroadcastProjectProgress announces a recomputed project rollup. Sent to the
// project room so dashboards update without polling.
func (b *Broadcaster) BroadcastProjectProgress(projectID string, progress int, status string) {
	room := fmt.Sprintf("project:%s", projectID)
	log.Printf("📡 BroadcastProjectProgress: room=%s, progress=%d, status=%s", room, progress, status)
	b.hub.SendToRoom(room, MessageProjectProgress, map[string]interface{}{
		"projectId": projectID,
		"progress":  progress,
		"status":    status,
	}, "")
}

// BroadcastMilestoneProgress announces a recomputed milestone rollup
func (b *Broadcaster) BroadcastMilestoneProgress(projectID, milestoneID string, progress int, status string) {
	room := fmt.Sprintf("project:%s", projectID)
	log.Printf("📡 BroadcastMilestoneProgress: room=%s, milestoneId=%s, progress=%d", room, milestoneID, progress)
	b.hub.SendToRoom(room, MessageMilestoneProgress, map[string]interface{}{
		"projectId":   projectID,
		"milestoneId": milestoneID,
		"progress":    progress,
		"status":      status,
	}, "")
}

// ============================================
// Project Broadcasting
// ============================================

// BroadcastProjectUpdated broadcasts project changes to all clients. Project
// lists are global in this app, so everyone gets the hint to refetch.
func (b *Broadcaster) BroadcastProjectUpdated(projectID string) {
	b.hub.Broadcast(MessageProjectUpdated, map[string]interface{}{
		"projectId": projectID,
	})
}

// BroadcastProjectDeleted broadcasts project deletion to all clients
func (b *Broadcaster) BroadcastProjectDeleted(projectID string) {
	b.hub.Broadcast(MessageProjectDeleted, map[string]interface{}{
		"projectId": projectID,
	})
}
