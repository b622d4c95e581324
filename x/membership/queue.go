package membership

import (
	"context"

	"github.com/iov-one/yieldvote"
	"github.com/iov-one/yieldvote/errors"
	"github.com/iov-one/yieldvote/orm"
)

// Queue gives access to the active project list and its pending changes.
type Queue struct {
	bucket orm.Bucket
}

// NewQueue returns a queue using the default bucket.
func NewQueue() *Queue {
	return &Queue{bucket: orm.NewBucket("membership")}
}

// Init stores the initial active list. It can be called only once.
func (q *Queue) Init(db yieldvote.KVStore, projects []yieldvote.Address) error {
	switch ok, err := q.bucket.Has(db, setKey); {
	case err != nil:
		return err
	case ok:
		return errors.Wrap(errors.ErrDuplicate, "membership already initialized")
	}
	return q.bucket.Put(db, setKey, &Set{Active: projects})
}

func (q *Queue) load(db yieldvote.ReadOnlyKVStore) (*Set, error) {
	var s Set
	if err := q.bucket.One(db, setKey, &s); err != nil {
		return nil, errors.Wrap(err, "membership")
	}
	return &s, nil
}

// Projects returns the active projects, in their stable order.
func (q *Queue) Projects(db yieldvote.ReadOnlyKVStore) ([]yieldvote.Address, error) {
	s, err := q.load(db)
	if err != nil {
		return nil, err
	}
	return s.Active, nil
}

// Pending returns the changes that the next commit is going to apply.
func (q *Queue) Pending(db yieldvote.ReadOnlyKVStore) (*Pending, error) {
	s, err := q.load(db)
	if err != nil {
		return nil, err
	}
	return &Pending{Additions: s.Additions, Removals: s.Removals}, nil
}

// QueueAddition schedules given project to become active at the next
// commit.
func (q *Queue) QueueAddition(ctx context.Context, db yieldvote.KVStore, project yieldvote.Address) error {
	if err := project.Validate(); err != nil {
		return errors.Wrap(err, "project")
	}
	s, err := q.load(db)
	if err != nil {
		return err
	}
	switch {
	case yieldvote.IndexOf(s.Active, project) >= 0:
		return errors.Wrapf(ErrAlreadyMember, "project %s", project)
	case yieldvote.IndexOf(s.Additions, project) >= 0:
		return errors.Wrapf(ErrAlreadyQueued, "addition of %s", project)
	}
	s.Additions = append(s.Additions, project)
	if err := q.bucket.Put(db, setKey, s); err != nil {
		return err
	}
	yieldvote.GetLogger(ctx).Debug("project addition queued", "project", project)
	return nil
}

// QueueRemoval schedules given active project to be removed at the next
// commit.
func (q *Queue) QueueRemoval(ctx context.Context, db yieldvote.KVStore, project yieldvote.Address) error {
	s, err := q.load(db)
	if err != nil {
		return err
	}
	switch {
	case yieldvote.IndexOf(s.Active, project) < 0:
		return errors.Wrapf(errors.ErrNotFound, "project %s", project)
	case yieldvote.IndexOf(s.Removals, project) >= 0:
		return errors.Wrapf(ErrAlreadyQueued, "removal of %s", project)
	}
	s.Removals = append(s.Removals, project)
	if err := q.bucket.Put(db, setKey, s); err != nil {
		return err
	}
	yieldvote.GetLogger(ctx).Debug("project removal queued", "project", project)
	return nil
}

// UnqueueAddition cancels a queued addition.
func (q *Queue) UnqueueAddition(ctx context.Context, db yieldvote.KVStore, project yieldvote.Address) error {
	s, err := q.load(db)
	if err != nil {
		return err
	}
	i := yieldvote.IndexOf(s.Additions, project)
	if i < 0 {
		return errors.Wrapf(errors.ErrNotFound, "no queued addition of %s", project)
	}
	s.Additions = append(s.Additions[:i], s.Additions[i+1:]...)
	return q.bucket.Put(db, setKey, s)
}

// UnqueueRemoval cancels a queued removal.
func (q *Queue) UnqueueRemoval(ctx context.Context, db yieldvote.KVStore, project yieldvote.Address) error {
	s, err := q.load(db)
	if err != nil {
		return err
	}
	i := yieldvote.IndexOf(s.Removals, project)
	if i < 0 {
		return errors.Wrapf(errors.ErrNotFound, "no queued removal of %s", project)
	}
	s.Removals = append(s.Removals[:i], s.Removals[i+1:]...)
	return q.bucket.Put(db, setKey, s)
}

// Commit applies all queued changes and returns the new active list.
//
// Removals are matched against the list as it was before the commit, so a
// project added by this commit stays active even if it is also listed for
// removal. Surviving projects keep their order, new ones are appended.
func (q *Queue) Commit(ctx context.Context, db yieldvote.KVStore) ([]yieldvote.Address, error) {
	s, err := q.load(db)
	if err != nil {
		return nil, err
	}
	logger := yieldvote.GetLogger(ctx)

	for _, p := range s.Additions {
		logger.Info("project added", "project", p)
	}

	active := make([]yieldvote.Address, 0, len(s.Active)+len(s.Additions))
	for _, p := range s.Active {
		if yieldvote.IndexOf(s.Removals, p) >= 0 {
			logger.Info("project removed", "project", p)
			continue
		}
		active = append(active, p)
	}
	for _, p := range s.Additions {
		if yieldvote.IndexOf(active, p) < 0 {
			active = append(active, p)
		}
	}

	next := &Set{Active: active}
	if err := q.bucket.Put(db, setKey, next); err != nil {
		return nil, err
	}
	return active, nil
}
