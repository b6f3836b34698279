// Package registry holds the clinic's single source of truth: the mutable,
// insertion-ordered collections of patients, doctors and appointments,
// together with the change-notification protocol their consumers rely on.
//
// A Clinic is constructed once by the composition root and passed by
// reference to every collaborator. All mutating operations are synchronous
// and either fully apply (collection, cascades, notifications) or fail
// before any state changes. The collections themselves are meant to be
// mutated from a single goroutine; only observer registration is safe to
// call concurrently.
package registry

import (
	"fmt"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/clinicdesk/clinicdesk/internal/domain/appointment"
	"github.com/clinicdesk/clinicdesk/internal/domain/doctor"
	"github.com/clinicdesk/clinicdesk/internal/domain/patient"
	"github.com/clinicdesk/clinicdesk/pkg/metrics"
)

type Clinic struct {
	log *zap.Logger
	m   *metrics.Collector

	patients     []*patient.Patient
	doctors      []*doctor.Doctor
	appointments []*appointment.Appointment

	// Next appointment id; starts at 1 and is never reused, even after
	// deletion.
	nextAppointmentID int64

	obsMu     sync.RWMutex
	observers []Observer
}

// New builds an empty clinic registry. A nil logger disables logging; a
// nil collector records metrics into a throwaway registry.
func New(log *zap.Logger, m *metrics.Collector) *Clinic {
	if log == nil {
		log = zap.NewNop()
	}
	if m == nil {
		m = metrics.NewCollector("clinicdesk", prometheus.NewRegistry())
	}
	return &Clinic{
		log:               log,
		m:                 m,
		nextAppointmentID: 1,
	}
}

// Register adds an observer to the notification list. Registration order
// is notification order; duplicates are not suppressed. Safe for
// concurrent use.
func (c *Clinic) Register(obs Observer) {
	c.obsMu.Lock()
	c.observers = append(c.observers, obs)
	n := len(c.observers)
	c.obsMu.Unlock()

	c.m.ObserversRegistered.Set(float64(n))
}

func (c *Clinic) notify(kind ChangeKind) {
	c.obsMu.RLock()
	observers := make([]Observer, len(c.observers))
	copy(observers, c.observers)
	c.obsMu.RUnlock()

	start := time.Now()
	for _, obs := range observers {
		obs.DataChanged(kind)
	}

	c.m.NotificationsTotal.WithLabelValues(string(kind)).Inc()
	c.m.NotifyDuration.WithLabelValues(string(kind)).Observe(time.Since(start).Seconds())
}

// --- Patients ---

// AddPatient appends a patient. Returns ErrDuplicateID when a patient
// with the same id is already registered.
func (c *Clinic) AddPatient(p *patient.Patient) error {
	if c.indexPatient(p.ID) >= 0 {
		c.m.MutationsRejected.WithLabelValues("patient", "duplicate_id").Inc()
		return fmt.Errorf("patient %q: %w", p.ID, ErrDuplicateID)
	}

	c.patients = append(c.patients, p)
	c.m.MutationsTotal.WithLabelValues("patient", "add").Inc()
	c.m.EntityCount.WithLabelValues("patient").Set(float64(len(c.patients)))
	c.log.Info("patient added", zap.String("patient_id", p.ID))

	c.notify(KindPatient)
	return nil
}

// EditPatient overwrites the mutable fields (name, phone, history number,
// address) of the patient with the given id. The stored record keeps its
// identity regardless of updated.ID. Returns ErrNotFound when absent.
func (c *Clinic) EditPatient(id string, updated *patient.Patient) error {
	i := c.indexPatient(id)
	if i < 0 {
		c.m.MutationsRejected.WithLabelValues("patient", "not_found").Inc()
		return fmt.Errorf("patient %q: %w", id, ErrNotFound)
	}

	p := c.patients[i]
	p.Name = updated.Name
	p.Phone = updated.Phone
	p.HistoryNumber = updated.HistoryNumber
	p.Address = updated.Address

	c.m.MutationsTotal.WithLabelValues("patient", "edit").Inc()
	c.log.Info("patient edited", zap.String("patient_id", id))

	c.notify(KindPatient)
	return nil
}

// RemovePatient removes the patient with the given id and cascades to
// every appointment referencing it. Removal of a missing id is a benign
// no-op returning false, with no notification. On success observers are
// notified with KindPatient followed by KindAppointment.
func (c *Clinic) RemovePatient(id string) bool {
	i := c.indexPatient(id)
	if i < 0 {
		return false
	}

	c.patients = append(c.patients[:i], c.patients[i+1:]...)
	cascaded := c.removeAppointmentsWhere(func(a *appointment.Appointment) bool {
		return a.Patient.ID == id
	})

	c.m.MutationsTotal.WithLabelValues("patient", "remove").Inc()
	c.m.EntityCount.WithLabelValues("patient").Set(float64(len(c.patients)))
	if cascaded > 0 {
		c.m.CascadeRemovedTotal.WithLabelValues("patient").Add(float64(cascaded))
	}
	c.log.Info("patient removed",
		zap.String("patient_id", id),
		zap.Int("appointments_cascaded", cascaded),
	)

	c.notify(KindPatient)
	c.notify(KindAppointment)
	return true
}

// Patients returns a snapshot of the patient collection in insertion
// order. Mutating the returned slice never changes registry state.
func (c *Clinic) Patients() []*patient.Patient {
	out := make([]*patient.Patient, len(c.patients))
	copy(out, c.patients)
	return out
}

func (c *Clinic) PatientCount() int {
	return len(c.patients)
}

func (c *Clinic) indexPatient(id string) int {
	for i, p := range c.patients {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// --- Doctors ---

// AddDoctor appends a doctor. Returns ErrDuplicateID when a doctor with
// the same id is already registered.
func (c *Clinic) AddDoctor(d *doctor.Doctor) error {
	if c.indexDoctor(d.ID) >= 0 {
		c.m.MutationsRejected.WithLabelValues("doctor", "duplicate_id").Inc()
		return fmt.Errorf("doctor %q: %w", d.ID, ErrDuplicateID)
	}

	c.doctors = append(c.doctors, d)
	c.m.MutationsTotal.WithLabelValues("doctor", "add").Inc()
	c.m.EntityCount.WithLabelValues("doctor").Set(float64(len(c.doctors)))
	c.log.Info("doctor added", zap.String("doctor_id", d.ID))

	c.notify(KindDoctor)
	return nil
}

// EditDoctor overwrites the mutable fields (name, phone, specialty,
// license number) of the doctor with the given id. Returns ErrNotFound
// when absent.
func (c *Clinic) EditDoctor(id string, updated *doctor.Doctor) error {
	i := c.indexDoctor(id)
	if i < 0 {
		c.m.MutationsRejected.WithLabelValues("doctor", "not_found").Inc()
		return fmt.Errorf("doctor %q: %w", id, ErrNotFound)
	}

	d := c.doctors[i]
	d.Name = updated.Name
	d.Phone = updated.Phone
	d.Specialty = updated.Specialty
	d.LicenseNumber = updated.LicenseNumber

	c.m.MutationsTotal.WithLabelValues("doctor", "edit").Inc()
	c.log.Info("doctor edited", zap.String("doctor_id", id))

	c.notify(KindDoctor)
	return nil
}

// RemoveDoctor removes the doctor with the given id and cascades to every
// appointment referencing it. Same no-op and notification semantics as
// RemovePatient, with KindDoctor first.
func (c *Clinic) RemoveDoctor(id string) bool {
	i := c.indexDoctor(id)
	if i < 0 {
		return false
	}

	c.doctors = append(c.doctors[:i], c.doctors[i+1:]...)
	cascaded := c.removeAppointmentsWhere(func(a *appointment.Appointment) bool {
		return a.Doctor.ID == id
	})

	c.m.MutationsTotal.WithLabelValues("doctor", "remove").Inc()
	c.m.EntityCount.WithLabelValues("doctor").Set(float64(len(c.doctors)))
	if cascaded > 0 {
		c.m.CascadeRemovedTotal.WithLabelValues("doctor").Add(float64(cascaded))
	}
	c.log.Info("doctor removed",
		zap.String("doctor_id", id),
		zap.Int("appointments_cascaded", cascaded),
	)

	c.notify(KindDoctor)
	c.notify(KindAppointment)
	return true
}

// Doctors returns a snapshot of the doctor collection in insertion order.
func (c *Clinic) Doctors() []*doctor.Doctor {
	out := make([]*doctor.Doctor, len(c.doctors))
	copy(out, c.doctors)
	return out
}

func (c *Clinic) DoctorCount() int {
	return len(c.doctors)
}

func (c *Clinic) indexDoctor(id string) int {
	for i, d := range c.doctors {
		if d.ID == id {
			return i
		}
	}
	return -1
}

// --- Appointments ---

// AddAppointment assigns the next id from the registry-owned sequence,
// appends the appointment unconditionally, and returns the assigned id.
func (c *Clinic) AddAppointment(a *appointment.Appointment) int64 {
	a.ID = c.nextAppointmentID
	c.nextAppointmentID++

	c.appointments = append(c.appointments, a)
	c.m.MutationsTotal.WithLabelValues("appointment", "add").Inc()
	c.m.EntityCount.WithLabelValues("appointment").Set(float64(len(c.appointments)))
	c.log.Info("appointment added",
		zap.Int64("appointment_id", a.ID),
		zap.String("patient_id", a.Patient.ID),
		zap.String("doctor_id", a.Doctor.ID),
		zap.String("strategy", a.Strategy().Name()),
	)

	c.notify(KindAppointment)
	return a.ID
}

// RemoveAppointment removes the appointment with the given id. Observers
// are notified only when a removal actually occurred.
func (c *Clinic) RemoveAppointment(id int64) bool {
	removed := c.removeAppointmentsWhere(func(a *appointment.Appointment) bool {
		return a.ID == id
	})
	if removed == 0 {
		return false
	}

	c.m.MutationsTotal.WithLabelValues("appointment", "remove").Inc()
	c.log.Info("appointment removed", zap.Int64("appointment_id", id))

	c.notify(KindAppointment)
	return true
}

// Appointments returns a snapshot of the appointment collection in
// insertion order.
func (c *Clinic) Appointments() []*appointment.Appointment {
	out := make([]*appointment.Appointment, len(c.appointments))
	copy(out, c.appointments)
	return out
}

func (c *Clinic) AppointmentCount() int {
	return len(c.appointments)
}

// removeAppointmentsWhere filters the appointment collection in place,
// preserving order, and returns how many records were dropped. Updates
// the entity gauge; notification is the caller's responsibility.
func (c *Clinic) removeAppointmentsWhere(match func(*appointment.Appointment) bool) int {
	kept := c.appointments[:0]
	removed := 0
	for _, a := range c.appointments {
		if match(a) {
			removed++
			continue
		}
		kept = append(kept, a)
	}
	for i := len(kept); i < len(c.appointments); i++ {
		c.appointments[i] = nil
	}
	c.appointments = kept

	if removed > 0 {
		c.m.EntityCount.WithLabelValues("appointment").Set(float64(len(c.appointments)))
	}
	return removed
}
