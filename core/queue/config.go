package queue

// Config holds configuration for the job queue.
type Config struct {
	// Driver selects the backend (redis, memory).
	Driver string `mapstructure:"driver" default:"redis"`
	// Name is the queue list name; the redis key is "<prefix>:<name>".
	Name string `mapstructure:"name" default:"generation"`
	// Prefix namespaces queue keys.
	Prefix string `mapstructure:"prefix" default:"queue"`
	// Concurrency is the number of consumer loops per process.
	Concurrency int `mapstructure:"concurrency" default:"2"`
	// PollSeconds is the blocking pop timeout.
	PollSeconds int `mapstructure:"poll_seconds" default:"1"`
}

const (
	DriverRedis  = "redis"
	DriverMemory = "memory"
)

// Key returns the list key holding pending jobs.
func (c Config) Key() string {
	return c.Prefix + ":" + c.Name
}

// DeadLetterKey returns the list key holding failed jobs.
func (c Config) DeadLetterKey() string {
	return c.Key() + ":dead"
}
