package registry

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"

	"github.com/clinicdesk/clinicdesk/internal/domain/appointment"
	"github.com/clinicdesk/clinicdesk/internal/domain/doctor"
	"github.com/clinicdesk/clinicdesk/internal/domain/patient"
	"github.com/clinicdesk/clinicdesk/internal/pricing"
	"github.com/clinicdesk/clinicdesk/pkg/metrics"
)

func newClinic(t *testing.T) *Clinic {
	t.Helper()
	return New(nil, metrics.NewCollector("test", prometheus.NewRegistry()))
}

func newPatient(id string) *patient.Patient {
	return patient.New(id, "Ana", "555", "H-"+id, patient.Options{})
}

func newDoctor(id string) *doctor.Doctor {
	return doctor.New(id, "Dr. Herrera", "555", doctor.Options{})
}

func newAppointment(t *testing.T, p *patient.Patient, d *doctor.Doctor) *appointment.Appointment {
	t.Helper()
	at := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	a, err := appointment.New(p, d, at, decimal.NewFromInt(80), pricing.Standard())
	if err != nil {
		t.Fatalf("appointment.New: %v", err)
	}
	return a
}

// recorder captures every notification in delivery order.
type recorder struct {
	kinds []ChangeKind
}

func (r *recorder) DataChanged(kind ChangeKind) {
	r.kinds = append(r.kinds, kind)
}

func TestAddPatientRejectsDuplicateID(t *testing.T) {
	c := newClinic(t)
	if err := c.AddPatient(newPatient("P1")); err != nil {
		t.Fatalf("AddPatient: %v", err)
	}

	err := c.AddPatient(newPatient("P1"))
	if !errors.Is(err, ErrDuplicateID) {
		t.Fatalf("duplicate AddPatient error = %v, want ErrDuplicateID", err)
	}
	if c.PatientCount() != 1 {
		t.Fatalf("collection changed on rejected insert: %d patients", c.PatientCount())
	}
}

func TestAddDoctorRejectsDuplicateID(t *testing.T) {
	c := newClinic(t)
	if err := c.AddDoctor(newDoctor("D1")); err != nil {
		t.Fatalf("AddDoctor: %v", err)
	}

	if err := c.AddDoctor(newDoctor("D1")); !errors.Is(err, ErrDuplicateID) {
		t.Fatalf("duplicate AddDoctor error = %v, want ErrDuplicateID", err)
	}
	if c.DoctorCount() != 1 {
		t.Fatalf("collection changed on rejected insert: %d doctors", c.DoctorCount())
	}
}

func TestAppointmentIDsMonotonicAcrossDeletions(t *testing.T) {
	c := newClinic(t)
	p, d := newPatient("P1"), newDoctor("D1")
	if err := c.AddPatient(p); err != nil {
		t.Fatal(err)
	}
	if err := c.AddDoctor(d); err != nil {
		t.Fatal(err)
	}

	var ids []int64
	for i := 0; i < 3; i++ {
		ids = append(ids, c.AddAppointment(newAppointment(t, p, d)))
	}
	if !c.RemoveAppointment(2) {
		t.Fatal("RemoveAppointment(2) = false, want true")
	}
	ids = append(ids, c.AddAppointment(newAppointment(t, p, d)))

	for i, id := range ids {
		if id != int64(i+1) {
			t.Fatalf("assigned ids = %v, want 1..%d in creation order", ids, len(ids))
		}
	}
}

func TestRemovePatientCascadesAppointments(t *testing.T) {
	c := newClinic(t)
	p1, p2, d := newPatient("P1"), newPatient("P2"), newDoctor("D1")
	for _, err := range []error{c.AddPatient(p1), c.AddPatient(p2), c.AddDoctor(d)} {
		if err != nil {
			t.Fatal(err)
		}
	}
	a1 := c.AddAppointment(newAppointment(t, p1, d))
	a2 := c.AddAppointment(newAppointment(t, p1, d))
	a3 := c.AddAppointment(newAppointment(t, p2, d))

	rec := &recorder{}
	c.Register(rec)

	if !c.RemovePatient("P1") {
		t.Fatal("RemovePatient(P1) = false, want true")
	}

	appts := c.Appointments()
	if len(appts) != 1 || appts[0].ID != a3 {
		t.Fatalf("appointments after cascade = %v, want only #%d (removed #%d, #%d)", appts, a3, a1, a2)
	}
	want := []ChangeKind{KindPatient, KindAppointment}
	if len(rec.kinds) != 2 || rec.kinds[0] != want[0] || rec.kinds[1] != want[1] {
		t.Fatalf("notifications = %v, want %v", rec.kinds, want)
	}
}

func TestRemoveDoctorCascadesAppointments(t *testing.T) {
	c := newClinic(t)
	p, d1, d2 := newPatient("P1"), newDoctor("D1"), newDoctor("D2")
	for _, err := range []error{c.AddPatient(p), c.AddDoctor(d1), c.AddDoctor(d2)} {
		if err != nil {
			t.Fatal(err)
		}
	}
	c.AddAppointment(newAppointment(t, p, d1))
	keep := c.AddAppointment(newAppointment(t, p, d2))

	if !c.RemoveDoctor("D1") {
		t.Fatal("RemoveDoctor(D1) = false, want true")
	}

	appts := c.Appointments()
	if len(appts) != 1 || appts[0].ID != keep {
		t.Fatalf("appointments after cascade = %v, want only #%d", appts, keep)
	}
}

func TestRemoveMissingIDIsSilentNoOp(t *testing.T) {
	c := newClinic(t)
	rec := &recorder{}
	c.Register(rec)

	if c.RemovePatient("nope") {
		t.Fatal("RemovePatient on missing id = true, want false")
	}
	if c.RemoveDoctor("nope") {
		t.Fatal("RemoveDoctor on missing id = true, want false")
	}
	if c.RemoveAppointment(99) {
		t.Fatal("RemoveAppointment on missing id = true, want false")
	}
	if len(rec.kinds) != 0 {
		t.Fatalf("no-op removals notified observers: %v", rec.kinds)
	}
}

func TestEditPatientPreservesIdentity(t *testing.T) {
	c := newClinic(t)
	if err := c.AddPatient(newPatient("P1")); err != nil {
		t.Fatal(err)
	}

	updated := patient.New("OTHER", "Luisa", "556", "H9", patient.Options{Address: "Calle 9"})
	if err := c.EditPatient("P1", updated); err != nil {
		t.Fatalf("EditPatient: %v", err)
	}

	got := c.Patients()[0]
	if got.ID != "P1" {
		t.Fatalf("stored id = %q, identity must never change", got.ID)
	}
	if got.Name != "Luisa" || got.Phone != "556" || got.HistoryNumber != "H9" || got.Address != "Calle 9" {
		t.Fatalf("mutable fields not overwritten: %+v", got)
	}
}

func TestEditDoctorOverwritesMutableFields(t *testing.T) {
	c := newClinic(t)
	if err := c.AddDoctor(newDoctor("D1")); err != nil {
		t.Fatal(err)
	}

	updated := doctor.New("D1", "Dr. Molina", "557", doctor.Options{Specialty: "Cardiology", LicenseNumber: "LIC-2"})
	if err := c.EditDoctor("D1", updated); err != nil {
		t.Fatalf("EditDoctor: %v", err)
	}

	got := c.Doctors()[0]
	if got.Name != "Dr. Molina" || got.Specialty != "Cardiology" || got.LicenseNumber != "LIC-2" {
		t.Fatalf("mutable fields not overwritten: %+v", got)
	}
}

func TestEditMissingIDFails(t *testing.T) {
	c := newClinic(t)

	if err := c.EditPatient("nope", newPatient("nope")); !errors.Is(err, ErrNotFound) {
		t.Fatalf("EditPatient error = %v, want ErrNotFound", err)
	}
	if err := c.EditDoctor("nope", newDoctor("nope")); !errors.Is(err, ErrNotFound) {
		t.Fatalf("EditDoctor error = %v, want ErrNotFound", err)
	}
}

func TestObserverFanOutOrder(t *testing.T) {
	c := newClinic(t)

	var order []string
	for i := 1; i <= 3; i++ {
		i := i
		c.Register(ObserverFunc(func(kind ChangeKind) {
			order = append(order, fmt.Sprintf("O%d:%s", i, kind))
		}))
	}

	if err := c.AddDoctor(newDoctor("D1")); err != nil {
		t.Fatal(err)
	}

	want := []string{"O1:doctor", "O2:doctor", "O3:doctor"}
	if len(order) != len(want) {
		t.Fatalf("fan-out = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("fan-out = %v, want %v (registration order, synchronous)", order, want)
		}
	}
}

func TestEveryMutationNotifiesItsKind(t *testing.T) {
	c := newClinic(t)
	p, d := newPatient("P1"), newDoctor("D1")
	if err := c.AddPatient(p); err != nil {
		t.Fatal(err)
	}
	if err := c.AddDoctor(d); err != nil {
		t.Fatal(err)
	}

	rec := &recorder{}
	c.Register(rec)

	id := c.AddAppointment(newAppointment(t, p, d))
	if err := c.EditPatient("P1", newPatient("P1")); err != nil {
		t.Fatal(err)
	}
	if err := c.EditDoctor("D1", newDoctor("D1")); err != nil {
		t.Fatal(err)
	}
	c.RemoveAppointment(id)

	want := []ChangeKind{KindAppointment, KindPatient, KindDoctor, KindAppointment}
	if len(rec.kinds) != len(want) {
		t.Fatalf("notifications = %v, want %v", rec.kinds, want)
	}
	for i := range want {
		if rec.kinds[i] != want[i] {
			t.Fatalf("notifications = %v, want %v", rec.kinds, want)
		}
	}
}

func TestSnapshotsAreIsolatedFromStore(t *testing.T) {
	c := newClinic(t)
	if err := c.AddPatient(newPatient("P1")); err != nil {
		t.Fatal(err)
	}

	snap := c.Patients()
	snap[0] = newPatient("P2")

	if got := c.Patients()[0].ID; got != "P1" {
		t.Fatalf("mutating the returned slice changed store state: first id = %q", got)
	}

	// Growing the snapshot must not leak into the store either.
	snap = append(snap, newPatient("P3"))
	if len(snap) != 2 || c.PatientCount() != 1 {
		t.Fatalf("patient count = %d, want 1", c.PatientCount())
	}
}

func TestCollectionsInsertionOrdered(t *testing.T) {
	c := newClinic(t)
	for _, id := range []string{"P3", "P1", "P2"} {
		if err := c.AddPatient(newPatient(id)); err != nil {
			t.Fatal(err)
		}
	}

	got := c.Patients()
	for i, want := range []string{"P3", "P1", "P2"} {
		if got[i].ID != want {
			t.Fatalf("patients out of insertion order: %v", got)
		}
	}
}

func TestDuplicateObserversBothNotified(t *testing.T) {
	c := newClinic(t)
	rec := &recorder{}
	c.Register(rec)
	c.Register(rec)

	if err := c.AddPatient(newPatient("P1")); err != nil {
		t.Fatal(err)
	}

	if len(rec.kinds) != 2 {
		t.Fatalf("duplicate registration suppressed: %d notifications, want 2", len(rec.kinds))
	}
}
