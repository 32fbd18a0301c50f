package attendance

import (
	"context"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/cmrl-attendance/attendance-backend-go/internal/domain/attendance"
	"github.com/cmrl-attendance/attendance-backend-go/internal/domain/employee"
	"github.com/cmrl-attendance/attendance-backend-go/internal/domain/report"
	"github.com/cmrl-attendance/attendance-backend-go/internal/pkg/validator"
	reportService "github.com/cmrl-attendance/attendance-backend-go/internal/service/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeEventRepo is an in-memory event log. It enforces open-shift
// uniqueness under a mutex the same way the partial unique index does,
// so the concurrency tests exercise the real guard semantics.
type fakeEventRepo struct {
	mu     sync.Mutex
	nextID int64
	events map[int64]attendance.Event
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{nextID: 1, events: make(map[int64]attendance.Event)}
}

func (f *fakeEventRepo) Create(ctx context.Context, e attendance.Event) (attendance.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if e.IsOpen() {
		for _, existing := range f.events {
			if existing.EmployeePK == e.EmployeePK && existing.IsOpen() {
				return attendance.Event{}, attendance.ErrAlreadyClockedIn
			}
		}
	}

	e.ID = f.nextID
	e.CreatedAt = time.Now().UTC()
	f.nextID++
	f.events[e.ID] = e
	return e, nil
}

func (f *fakeEventRepo) GetOpenShift(ctx context.Context, employeePK int64) (*attendance.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range f.events {
		if e.EmployeePK == employeePK && e.IsOpen() {
			open := e
			return &open, nil
		}
	}
	return nil, nil
}

func (f *fakeEventRepo) GetByIDForEmployee(ctx context.Context, id, employeePK int64) (attendance.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.events[id]
	if !ok || e.EmployeePK != employeePK {
		return attendance.Event{}, attendance.ErrEventNotFound
	}
	return e, nil
}

func (f *fakeEventRepo) CloseOpenShift(ctx context.Context, req attendance.CloseShift) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.events[req.EventID]
	if !ok || e.EmployeePK != req.EmployeePK || !e.IsOpen() {
		return false, nil
	}
	out := req.CheckOutTime
	e.CheckOutTime = &out
	e.CheckOutLatitude = req.Latitude
	e.CheckOutLongitude = req.Longitude
	e.CloseReason = req.Reason
	f.events[req.EventID] = e
	return true, nil
}

func (f *fakeEventRepo) ListWorkShiftsInRange(ctx context.Context, from, to time.Time, employeeID *string) ([]attendance.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []attendance.Event
	for _, e := range f.events {
		if e.Kind() != attendance.KindWorkShift {
			continue
		}
		if e.CheckInTime.Before(from) || !e.CheckInTime.Before(to) {
			continue
		}
		if employeeID != nil && e.EmployeeID != *employeeID {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (f *fakeEventRepo) ListRecentWorkShifts(ctx context.Context, employeePK int64, limit int) ([]attendance.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []attendance.Event
	for _, e := range f.events {
		if e.EmployeePK == employeePK && e.Kind() == attendance.KindWorkShift {
			out = append(out, e)
		}
	}
	// Newest first, as the repository query orders them.
	for i := 0; i < len(out); i++ {
		for j := i + 1; j < len(out); j++ {
			if out[j].CheckInTime.After(out[i].CheckInTime) {
				out[i], out[j] = out[j], out[i]
			}
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeEventRepo) ListAllForEmployee(ctx context.Context, employeePK int64) ([]attendance.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []attendance.Event
	for _, e := range f.events {
		if e.EmployeePK == employeePK {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeEventRepo) DeleteForEmployee(ctx context.Context, employeePK int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, e := range f.events {
		if e.EmployeePK == employeePK {
			delete(f.events, id)
		}
	}
	return nil
}

type fakeEmployeeRepo struct {
	byEmployeeID map[string]employee.Employee
}

func newFakeEmployeeRepo(employees ...employee.Employee) *fakeEmployeeRepo {
	f := &fakeEmployeeRepo{byEmployeeID: make(map[string]employee.Employee)}
	for _, e := range employees {
		f.byEmployeeID[e.EmployeeID] = e
	}
	return f
}

func (f *fakeEmployeeRepo) Create(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	f.byEmployeeID[e.EmployeeID] = e
	return e, nil
}

func (f *fakeEmployeeRepo) GetByID(ctx context.Context, id int64) (employee.Employee, error) {
	for _, e := range f.byEmployeeID {
		if e.ID == id {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) GetByEmployeeID(ctx context.Context, employeeID string) (employee.Employee, error) {
	e, ok := f.byEmployeeID[employeeID]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (f *fakeEmployeeRepo) List(ctx context.Context) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, e := range f.byEmployeeID {
		out = append(out, e)
	}
	return out, nil
}

func (f *fakeEmployeeRepo) Update(ctx context.Context, id int64, req employee.UpdateEmployeeRequest) error {
	return nil
}

func (f *fakeEmployeeRepo) Delete(ctx context.Context, id int64) error {
	return nil
}

func (f *fakeEmployeeRepo) SetPassword(ctx context.Context, employeeID string, hash string) (bool, error) {
	return true, nil
}

func testEmployee() employee.Employee {
	return employee.Employee{
		ID:         7,
		EmployeeID: "E1001",
		Name:       "Asha Rao",
		Department: "Operations",
	}
}

func floatPtr(f float64) *float64 { return &f }

func clockInReq(ts time.Time, late bool) attendance.ClockInRequest {
	return attendance.ClockInRequest{
		EmployeeID: "E1001",
		Name:       "Asha Rao",
		Department: "Operations",
		Latitude:   floatPtr(12.97),
		Longitude:  floatPtr(77.59),
		Timestamp:  ts.Format(time.RFC3339),
		Late:       late,
	}
}

func TestClockIn_Success(t *testing.T) {
	eventRepo := newFakeEventRepo()
	svc := NewAttendanceService(eventRepo, newFakeEmployeeRepo(testEmployee()))

	resp, err := svc.ClockIn(context.Background(), clockInReq(time.Date(2026, 2, 10, 9, 0, 0, 0, time.UTC), false))
	require.NoError(t, err)
	assert.Equal(t, "E1001", resp.EmployeeID)
	assert.NotZero(t, resp.ID)
}

func TestClockIn_UnknownEmployee(t *testing.T) {
	svc := NewAttendanceService(newFakeEventRepo(), newFakeEmployeeRepo())

	_, err := svc.ClockIn(context.Background(), clockInReq(time.Now().UTC(), false))
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestClockIn_SecondOpenShiftRejected(t *testing.T) {
	eventRepo := newFakeEventRepo()
	svc := NewAttendanceService(eventRepo, newFakeEmployeeRepo(testEmployee()))
	ctx := context.Background()

	_, err := svc.ClockIn(ctx, clockInReq(time.Date(2026, 2, 10, 9, 0, 0, 0, time.UTC), false))
	require.NoError(t, err)

	_, err = svc.ClockIn(ctx, clockInReq(time.Date(2026, 2, 10, 9, 5, 0, 0, time.UTC), false))
	assert.ErrorIs(t, err, attendance.ErrAlreadyClockedIn)
}

func TestClockIn_ConcurrentAttemptsOpenOneShift(t *testing.T) {
	eventRepo := newFakeEventRepo()
	svc := NewAttendanceService(eventRepo, newFakeEmployeeRepo(testEmployee()))
	req := clockInReq(time.Date(2026, 2, 10, 9, 0, 0, 0, time.UTC), false)

	const attempts = 20
	var wg sync.WaitGroup
	results := make(chan error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.ClockIn(context.Background(), req)
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var succeeded, conflicted int
	for err := range results {
		switch {
		case err == nil:
			succeeded++
		case assert.ErrorIs(t, err, attendance.ErrAlreadyClockedIn):
			conflicted++
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, attempts-1, conflicted)

	open, err := eventRepo.GetOpenShift(context.Background(), 7)
	require.NoError(t, err)
	require.NotNil(t, open)
}

func TestClockOut_Lifecycle(t *testing.T) {
	eventRepo := newFakeEventRepo()
	svc := NewAttendanceService(eventRepo, newFakeEmployeeRepo(testEmployee()))
	ctx := context.Background()

	in, err := svc.ClockIn(ctx, clockInReq(time.Date(2026, 2, 10, 9, 0, 0, 0, time.UTC), false))
	require.NoError(t, err)

	outReq := attendance.ClockOutRequest{
		EmployeeID:   "E1001",
		ClockInRefID: strconv.FormatInt(in.ID, 10),
		Latitude:     floatPtr(12.97),
		Longitude:    floatPtr(77.59),
		Timestamp:    time.Date(2026, 2, 10, 17, 30, 0, 0, time.UTC).Format(time.RFC3339),
	}

	out, err := svc.ClockOut(ctx, outReq)
	require.NoError(t, err)
	assert.Equal(t, in.ID, out.ID)

	// A second close of the same shift is a conflict, not a repeat.
	_, err = svc.ClockOut(ctx, outReq)
	assert.ErrorIs(t, err, attendance.ErrAlreadyClockedOut)

	status, err := svc.Status(ctx, "E1001")
	require.NoError(t, err)
	assert.Equal(t, attendance.TypeClockOut, status.Type)
	assert.Nil(t, status.ID)
}

func TestClockOut_SystemMarkerRejected(t *testing.T) {
	eventRepo := newFakeEventRepo()
	svc := NewAttendanceService(eventRepo, newFakeEmployeeRepo(testEmployee()))
	ctx := context.Background()

	reason := attendance.CloseReasonSystemLogin
	ts := time.Date(2026, 2, 10, 8, 45, 0, 0, time.UTC)
	marker, err := eventRepo.Create(ctx, attendance.Event{
		EmployeePK:  7,
		EmployeeID:  "E1001",
		Name:        "Asha Rao",
		Department:  "Operations",
		CheckInTime: ts,
		CloseReason: &reason,
	})
	require.NoError(t, err)

	_, err = svc.ClockOut(ctx, attendance.ClockOutRequest{
		EmployeeID:   "E1001",
		ClockInRefID: strconv.FormatInt(marker.ID, 10),
		Latitude:     floatPtr(12.97),
		Longitude:    floatPtr(77.59),
		Timestamp:    ts.Format(time.RFC3339),
	})
	assert.ErrorIs(t, err, attendance.ErrNotWorkShift)
}

func TestClockOut_UnknownEvent(t *testing.T) {
	svc := NewAttendanceService(newFakeEventRepo(), newFakeEmployeeRepo(testEmployee()))

	_, err := svc.ClockOut(context.Background(), attendance.ClockOutRequest{
		EmployeeID:   "E1001",
		ClockInRefID: "9999",
		Latitude:     floatPtr(12.97),
		Longitude:    floatPtr(77.59),
		Timestamp:    time.Now().UTC().Format(time.RFC3339),
	})
	assert.ErrorIs(t, err, attendance.ErrEventNotFound)
}

func TestStatus_OpenShift(t *testing.T) {
	eventRepo := newFakeEventRepo()
	svc := NewAttendanceService(eventRepo, newFakeEmployeeRepo(testEmployee()))
	ctx := context.Background()

	in, err := svc.ClockIn(ctx, clockInReq(time.Date(2026, 2, 10, 9, 40, 0, 0, time.UTC), true))
	require.NoError(t, err)

	status, err := svc.Status(ctx, "E1001")
	require.NoError(t, err)
	assert.Equal(t, attendance.TypeClockIn, status.Type)
	require.NotNil(t, status.ID)
	assert.Equal(t, in.ID, *status.ID)
	require.NotNil(t, status.Late)
	assert.True(t, *status.Late)
}

func TestStatus_UnknownEmployeeReportsClockedOut(t *testing.T) {
	svc := NewAttendanceService(newFakeEventRepo(), newFakeEmployeeRepo())

	status, err := svc.Status(context.Background(), "GHOST")
	require.NoError(t, err)
	assert.Equal(t, attendance.TypeClockOut, status.Type)
	assert.Nil(t, status.ID)
	assert.Nil(t, status.Timestamp)
}

func TestRecent_GroupsIntoFiveNewestDays(t *testing.T) {
	eventRepo := newFakeEventRepo()
	svc := NewAttendanceService(eventRepo, newFakeEmployeeRepo(testEmployee()))
	ctx := context.Background()

	// Seven days of closed shifts, two records on the newest day.
	for day := 1; day <= 7; day++ {
		in := time.Date(2026, 2, day, 9, 0, 0, 0, time.UTC)
		out := in.Add(8 * time.Hour)
		_, err := eventRepo.Create(ctx, attendance.Event{
			EmployeePK:   7,
			EmployeeID:   "E1001",
			Name:         "Asha Rao",
			Department:   "Operations",
			CheckInTime:  in,
			CheckOutTime: &out,
		})
		require.NoError(t, err)
	}
	lateIn := time.Date(2026, 2, 7, 19, 0, 0, 0, time.UTC)
	lateOut := lateIn.Add(2 * time.Hour)
	_, err := eventRepo.Create(ctx, attendance.Event{
		EmployeePK:   7,
		EmployeeID:   "E1001",
		Name:         "Asha Rao",
		Department:   "Operations",
		CheckInTime:  lateIn,
		CheckOutTime: &lateOut,
	})
	require.NoError(t, err)

	groups, err := svc.Recent(ctx, "E1001")
	require.NoError(t, err)
	require.Len(t, groups, 5)

	assert.Equal(t, "2026-02-07", groups[0].Date)
	assert.Equal(t, "2026-02-03", groups[4].Date)

	// Two shifts on Feb 7 expand to four records, oldest first.
	require.Len(t, groups[0].Records, 4)
	assert.Equal(t, attendance.TypeClockIn, groups[0].Records[0].Type)
	assert.True(t, groups[0].Records[0].Timestamp.Before(groups[0].Records[2].Timestamp))
}

func TestFullShiftLifecycleWithReport(t *testing.T) {
	eventRepo := newFakeEventRepo()
	svc := NewAttendanceService(eventRepo, newFakeEmployeeRepo(testEmployee()))
	reportSvc := reportService.NewReportService(eventRepo)
	ctx := context.Background()

	in, err := svc.ClockIn(ctx, clockInReq(time.Date(2024, 3, 4, 8, 10, 0, 0, time.UTC), true))
	require.NoError(t, err)

	status, err := svc.Status(ctx, "E1001")
	require.NoError(t, err)
	assert.Equal(t, attendance.TypeClockIn, status.Type)
	require.NotNil(t, status.ID)
	assert.Equal(t, in.ID, *status.ID)

	reports, err := reportSvc.Monthly(ctx, report.MonthlyReportRequest{Month: 2, Year: 2024})
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, "E1001", reports[0].EmployeeID)
	assert.Equal(t, 1, reports[0].PresentDays)
	assert.Equal(t, 1, reports[0].LateDays)

	reason := "doctor"
	_, err = svc.ClockOut(ctx, attendance.ClockOutRequest{
		EmployeeID:          "E1001",
		ClockInRefID:        strconv.FormatInt(in.ID, 10),
		Latitude:            floatPtr(12.97),
		Longitude:           floatPtr(77.59),
		Timestamp:           time.Date(2024, 3, 4, 12, 0, 0, 0, time.UTC).Format(time.RFC3339),
		EarlyCheckoutReason: &reason,
	})
	require.NoError(t, err)

	status, err = svc.Status(ctx, "E1001")
	require.NoError(t, err)
	assert.Equal(t, attendance.TypeClockOut, status.Type)
}

func TestHistory_IncludesMarkers(t *testing.T) {
	eventRepo := newFakeEventRepo()
	svc := NewAttendanceService(eventRepo, newFakeEmployeeRepo(testEmployee()))
	ctx := context.Background()

	loginReason := attendance.CloseReasonSystemLogin
	ts := time.Date(2026, 2, 10, 8, 45, 0, 0, time.UTC)
	_, err := eventRepo.Create(ctx, attendance.Event{
		EmployeePK:  7,
		EmployeeID:  "E1001",
		CheckInTime: ts,
		CloseReason: &loginReason,
	})
	require.NoError(t, err)

	_, err = svc.ClockIn(ctx, clockInReq(ts.Add(15*time.Minute), false))
	require.NoError(t, err)

	views, err := svc.History(ctx, "E1001")
	require.NoError(t, err)
	require.Len(t, views, 2)

	types := map[string]bool{}
	for _, v := range views {
		types[v.Type] = true
	}
	assert.True(t, types[attendance.TypeLoginEvent])
	assert.True(t, types[attendance.TypeClockIn])
}

func TestHistory_SortsViewsDescending(t *testing.T) {
	// A closed shift yields an in view and an out view from the same
	// row, so the out view must still land before the older in view.
	eventRepo := newFakeEventRepo()
	svc := NewAttendanceService(eventRepo, newFakeEmployeeRepo(testEmployee()))
	ctx := context.Background()

	in, err := svc.ClockIn(ctx, clockInReq(time.Date(2026, 2, 10, 9, 0, 0, 0, time.UTC), false))
	require.NoError(t, err)

	_, err = svc.ClockOut(ctx, attendance.ClockOutRequest{
		EmployeeID:   "E1001",
		ClockInRefID: strconv.FormatInt(in.ID, 10),
		Latitude:     floatPtr(12.97),
		Longitude:    floatPtr(77.59),
		Timestamp:    time.Date(2026, 2, 10, 17, 0, 0, 0, time.UTC).Format(time.RFC3339),
	})
	require.NoError(t, err)

	loginReason := attendance.CloseReasonSystemLogin
	_, err = eventRepo.Create(ctx, attendance.Event{
		EmployeePK:  7,
		EmployeeID:  "E1001",
		CheckInTime: time.Date(2026, 2, 10, 18, 0, 0, 0, time.UTC),
		CloseReason: &loginReason,
	})
	require.NoError(t, err)

	views, err := svc.History(ctx, "E1001")
	require.NoError(t, err)
	require.Len(t, views, 3)

	for i := 1; i < len(views); i++ {
		assert.Truef(t, views[i].Timestamp.Before(views[i-1].Timestamp),
			"view %s (%s) out of order after %s (%s)",
			views[i].ID, views[i].Timestamp, views[i-1].ID, views[i-1].Timestamp)
	}
	assert.Equal(t, attendance.TypeLoginEvent, views[0].Type)
	assert.Equal(t, attendance.TypeClockOut, views[1].Type)
	assert.Equal(t, attendance.TypeClockIn, views[2].Type)
}

func TestClockIn_MissingCoordinatesRejected(t *testing.T) {
	svc := NewAttendanceService(newFakeEventRepo(), newFakeEmployeeRepo(testEmployee()))

	req := clockInReq(time.Date(2026, 2, 10, 9, 0, 0, 0, time.UTC), false)
	req.Latitude = nil

	_, err := svc.ClockIn(context.Background(), req)
	require.Error(t, err)

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "latitude")
}
