package pool

// State is the aggregate root: one instance per context, exclusively
// owned by the caller. The host guarantees call-at-a-time execution,
// so no internal locking exists here.
type State struct {
	mode   OperatingMode
	admin  UserID
	config *PoolConfig

	orders    map[string]*UserOrder
	orderSeq  []string // all order ids in submission order
	userIndex map[UserID][]string

	orderCounter uint64
	batchCounter uint64

	batches map[string]*BatchMatchResult

	activeUsers []UserID

	emitter Emitter
}

// New creates a context state. The host's executor becomes admin. The
// pool config is optional and, by convention, present only in
// MatchingPool mode. A nil emitter discards events.
func New(mode OperatingMode, config *PoolConfig, admin UserID, emitter Emitter) *State {
	if emitter == nil {
		emitter = nopEmitter{}
	}
	return &State{
		mode:      mode,
		admin:     admin,
		config:    config,
		orders:    make(map[string]*UserOrder),
		userIndex: make(map[UserID][]string),
		batches:   make(map[string]*BatchMatchResult),
		emitter:   emitter,
	}
}

func (s *State) emit(ev Event) {
	s.emitter.Emit(ev)
}
