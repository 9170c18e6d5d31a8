package shared

// BaseAggregateRoot extends BaseEntity with a version counter used for
// optimistic locking.
type BaseAggregateRoot struct {
	BaseEntity
	Version int
}

// NewBaseAggregateRoot creates an aggregate root at version 1.
func NewBaseAggregateRoot() BaseAggregateRoot {
	return BaseAggregateRoot{
		BaseEntity: NewBaseEntity(),
		Version:    1,
	}
}

// IncrementVersion bumps the optimistic-lock version and refreshes the
// update timestamp.
func (a *BaseAggregateRoot) IncrementVersion() {
	a.Version++
	a.Touch()
}
