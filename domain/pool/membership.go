package pool

// fallbackPoolName is emitted when no pool config was set.
const fallbackPoolName = "Unknown Pool"

// JoinPool admits a user to the matching pool. Idempotent: joining
// twice is a no-op and emits nothing the second time.
func (s *State) JoinPool(user UserID) error {
	return s.admit(user)
}

// AddUserToPool is the administrative variant of JoinPool for direct
// admission without a submission trigger. Same contract.
func (s *State) AddUserToPool(user UserID) error {
	return s.admit(user)
}

func (s *State) admit(user UserID) error {
	if s.mode != MatchingPool {
		return ErrNotMatchingPool
	}
	if s.isMember(user) {
		return nil
	}

	s.activeUsers = append(s.activeUsers, user)
	s.emit(UserJoinedPool{UserID: user, PoolName: s.poolName()})
	return nil
}

func (s *State) isMember(user UserID) bool {
	for _, u := range s.activeUsers {
		if u == user {
			return true
		}
	}
	return false
}

func (s *State) poolName() string {
	if s.config != nil {
		return s.config.PoolName
	}
	return fallbackPoolName
}
