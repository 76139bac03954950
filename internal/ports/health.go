package ports

import "context"

// HealthPort reports whether the service behind name can take requests.
// msg is meant for operators and is logged as is.
type HealthPort interface {
	Check(ctx context.Context, name string) (healthy bool, msg string)
}
