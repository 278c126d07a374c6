package repository

// NotificationRepository holds per-user pending messages and the one-shot
// latch keys used by milestone triggers.
type NotificationRepository interface {
	Push(username, message string)
	Drain(username string) []string
	// MarkOnce records key and reports whether this was the first time.
	MarkOnce(key, date string) bool
}

type notificationRepository struct {
	queues map[string][]string
	fired  map[string]string
}

// NewNotificationRepository returns an empty in-memory queue.
func NewNotificationRepository() NotificationRepository {
	return &notificationRepository{
		queues: make(map[string][]string),
		fired:  make(map[string]string),
	}
}

func (r *notificationRepository) Push(username, message string) {
	r.queues[username] = append(r.queues[username], message)
}

// Drain returns and clears the queue; never nil.
func (r *notificationRepository) Drain(username string) []string {
	queued := r.queues[username]
	out := make([]string, len(queued))
	copy(out, queued)
	delete(r.queues, username)
	return out
}

func (r *notificationRepository) MarkOnce(key, date string) bool {
	if _, ok := r.fired[key]; ok {
		return false
	}
	r.fired[key] = date
	return true
}
