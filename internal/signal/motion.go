package signal

// MotionSignal combines the system reduced-motion preference with an explicit
// override. The override can only add reduced motion, never remove it.
//
// System changes are pushed to subscribers as they happen. The override is
// polled: Read always sees its latest value, and subscribers only hear about
// an override flip when the host calls Poll.
type MotionSignal struct {
	system   Preference
	override func() bool

	subs     Broadcaster
	sysSub   Subscription
	last     bool
	attached bool
}

// NewMotionSignal builds a signal. Either source may be nil.
func NewMotionSignal(system Preference, override func() bool) *MotionSignal {
	m := &MotionSignal{system: system, override: override}
	m.last = m.Read()
	return m
}

// Read reports system || override.
func (m *MotionSignal) Read() bool {
	if m == nil {
		return false
	}
	sys := m.system != nil && m.system.Get()
	return sys || (m.override != nil && m.override())
}

// Subscribe registers fn for changes of the combined value.
func (m *MotionSignal) Subscribe(fn func(reduced bool)) Subscription {
	if m == nil {
		return Subscription{}
	}
	if !m.attached && m.system != nil {
		m.sysSub = m.system.OnChange(func(bool) { m.notify(true) })
		m.attached = true
	}
	sub := m.subs.Add(fn)
	return Subscription{remove: func() {
		sub.Remove()
		if m.subs.Len() == 0 && m.attached {
			m.sysSub.Remove()
			m.attached = false
		}
	}}
}

// Poll re-reads both sources and notifies subscribers if the combined value
// changed since the last notification.
func (m *MotionSignal) Poll() {
	if m == nil {
		return
	}
	m.notify(false)
}

func (m *MotionSignal) notify(systemChanged bool) {
	v := m.Read()
	if v == m.last && !systemChanged {
		return
	}
	m.last = v
	m.subs.Emit(v)
}

// Env is the Environment built from a MotionSignal and a visibility source.
type Env struct {
	Motion     *MotionSignal
	Visibility Preference
}

// NewEnv wires an Environment. Nil sources degrade to "motion allowed" and
// "visible" with no-op subscriptions, so the same code runs headless.
func NewEnv(system Preference, override func() bool, visibility Preference) *Env {
	return &Env{
		Motion:     NewMotionSignal(system, override),
		Visibility: visibility,
	}
}

// Headless returns an Environment with no platform behind it.
func Headless() *Env {
	return NewEnv(nil, nil, nil)
}

func (e *Env) CurrentReducedMotion() bool {
	return e.Motion.Read()
}

func (e *Env) CurrentVisibility() bool {
	if e.Visibility == nil {
		return true
	}
	return e.Visibility.Get()
}

func (e *Env) OnReducedMotionChange(fn func(bool)) Subscription {
	return e.Motion.Subscribe(fn)
}

func (e *Env) OnVisibilityChange(fn func(bool)) Subscription {
	if e.Visibility == nil {
		return Subscription{}
	}
	return e.Visibility.OnChange(fn)
}
