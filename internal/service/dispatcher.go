package service

// GradingDispatcher hands a just-answered question off for asynchronous
// grading. Enqueue must not block; it returns false when the queue is full
// so the caller can log the drop instead of stalling answer ingestion.
type GradingDispatcher interface {
	Enqueue(questionID uint) bool
}
