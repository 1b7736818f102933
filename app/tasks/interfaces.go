package tasks

// TaskSchedulerInterface is the contract the main application uses to manage
// background maintenance processing: queue management and worker pool
// lifecycle.
type TaskSchedulerInterface interface {
	Start()
	Stop()
	EnqueueTask(task TaskInterface) error
}
