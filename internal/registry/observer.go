package registry

// ChangeKind tags which collection changed when observers are notified.
type ChangeKind string

const (
	KindPatient     ChangeKind = "patient"
	KindDoctor      ChangeKind = "doctor"
	KindAppointment ChangeKind = "appointment"
)

// Observer receives synchronous change notifications from the registry.
// Implementations are expected to be idempotent and cheap — typically
// "re-read the affected collection and refresh a view". An observer must
// not mutate the registry while being notified; notification is
// re-entrant-unsafe by contract.
type Observer interface {
	DataChanged(kind ChangeKind)
}

// ObserverFunc adapts a plain function to the Observer interface.
type ObserverFunc func(kind ChangeKind)

func (f ObserverFunc) DataChanged(kind ChangeKind) {
	f(kind)
}
