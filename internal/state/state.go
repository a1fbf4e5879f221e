// Package state holds the observable application state shared by both
// clients: the current session, role set, and catalog/booking caches. It
// orchestrates which service calls to make based on the active role and
// reconciles multi-role accounts against the persistent session store.
package state

import (
	"context"
	"fmt"
	"sync"

	"droneRentalMarketplace/internal/api"
	"droneRentalMarketplace/internal/services"
	"droneRentalMarketplace/internal/session"
	"droneRentalMarketplace/models"
)

// Phase is the tagged session state. Illegal combinations of nullable
// fields are not representable through this view.
type Phase string

const (
	PhaseUnauthenticated       Phase = "unauthenticated"
	PhaseAwaitingRoleSelection Phase = "awaiting_role_selection"
	PhaseActive                Phase = "active"
)

// AppState is the in-memory session/role state holder. All published fields
// are guarded by a single mutex; network calls never run under it.
type AppState struct {
	auth     *services.AuthService
	drones   *services.DroneService
	bookings *services.BookingService
	owners   *services.OwnerService
	store    *session.Store
	baseURL  string

	mu             sync.Mutex
	token          string
	mobile         string
	profileName    string
	selectedRole   models.Role // "" when no role selected
	availableRoles []models.Role
	droneCache     []models.Drone
	ownerDrones    []models.Drone
	bookingCache   []models.Booking
	ownerCache     []models.Owner
	catalogFilter  CatalogFilter
	location       *Coordinates
	loading        bool
	errMsg         string

	// Mutations to the same entity are serialized so a later call's
	// response cannot overwrite an earlier one's state update.
	entityLocks keyedMutex
}

// New builds an AppState over the given client and store, restoring any
// persisted session. A persisted lone role is promoted to the role set, and
// a single-role account gets its role selected automatically.
func New(client *api.Client, store *session.Store) (*AppState, error) {
	a := &AppState{
		auth:          services.NewAuthService(client),
		drones:        services.NewDroneService(client),
		bookings:      services.NewBookingService(client),
		owners:        services.NewOwnerService(client),
		store:         store,
		baseURL:       client.BaseURL(),
		catalogFilter: DefaultCatalogFilter(),
	}
	if err := a.restore(); err != nil {
		return nil, fmt.Errorf("restore session: %w", err)
	}
	return a, nil
}

func (a *AppState) restore() error {
	var err error
	if a.token, err = a.store.Token(); err != nil {
		return err
	}
	if a.mobile, err = a.store.Mobile(); err != nil {
		return err
	}
	if a.profileName, err = a.store.ProfileName(); err != nil {
		return err
	}
	if a.availableRoles, err = a.store.AvailableRoles(); err != nil {
		return err
	}
	role, ok, err := a.store.SelectedRole()
	if err != nil {
		return err
	}
	if ok {
		a.selectedRole = role
	}
	if len(a.availableRoles) == 0 && a.selectedRole != "" {
		a.availableRoles = []models.Role{a.selectedRole}
	}
	if a.selectedRole == "" && len(a.availableRoles) == 1 {
		a.selectedRole = a.availableRoles[0]
		if err := a.store.SetSelectedRole(a.selectedRole); err != nil {
			return err
		}
	}
	return nil
}

// Phase returns the tagged session state and, when active, the role.
func (a *AppState) Phase() (Phase, models.Role) {
	a.mu.Lock()
	defer a.mu.Unlock()
	switch {
	case a.token == "":
		return PhaseUnauthenticated, ""
	case a.selectedRole == "":
		return PhaseAwaitingRoleSelection, ""
	default:
		return PhaseActive, a.selectedRole
	}
}

// RequestOTP asks the backend to send an OTP to the mobile number.
func (a *AppState) RequestOTP(ctx context.Context, mobile string) (*models.OTPRequestResponse, error) {
	return a.auth.RequestOTP(ctx, mobile)
}

// VerifyOTP exchanges the OTP for a session and reconciles the role set.
// Role selection after authentication follows a fixed ladder: the
// previously persisted role if still valid, then the backend's primary
// role, then a lone available role, otherwise no selection (awaiting an
// explicit choice).
func (a *AppState) VerifyOTP(ctx context.Context, mobile, otp string, role models.Role, name *string, lat, lon *float64) (*models.AuthResponse, error) {
	resp, err := a.auth.VerifyOTP(ctx, mobile, otp, role, name, lat, lon)
	if err != nil {
		return nil, err
	}
	if resp.AccessToken == "" || len(resp.Roles) == 0 {
		// Degenerate auth outcome: no usable role information.
		return resp, fmt.Errorf("verify otp: backend returned no role for %s", mobile)
	}
	if err := a.applyAuth(resp, mobile, role); err != nil {
		return nil, err
	}
	return resp, nil
}

func (a *AppState) applyAuth(resp *models.AuthResponse, mobile string, requested models.Role) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	// The previously persisted selection decides ties before it is overwritten.
	stored, hadStored, err := a.store.SelectedRole()
	if err != nil {
		return err
	}

	a.token = resp.AccessToken
	a.mobile = mobile
	if err := a.store.SetToken(a.token); err != nil {
		return err
	}
	if err := a.store.SetMobile(mobile); err != nil {
		return err
	}
	if resp.ProfileName != nil && *resp.ProfileName != "" {
		a.profileName = *resp.ProfileName
		if err := a.store.SetProfileName(a.profileName); err != nil {
			return err
		}
	}

	roles := models.ParseRoles(resp.Roles)
	if len(roles) == 0 {
		if primary, ok := models.ParseRole(resp.Role); ok {
			roles = []models.Role{primary}
		} else {
			roles = []models.Role{requested}
		}
	}
	a.availableRoles = roles
	if err := a.store.SetAvailableRoles(roles); err != nil {
		return err
	}

	primary, primaryOK := models.ParseRole(resp.Role)
	switch {
	case hadStored && models.RolesContain(roles, stored):
		return a.switchRoleLocked(stored, true)
	case primaryOK && models.RolesContain(roles, primary):
		return a.switchRoleLocked(primary, true)
	case len(roles) == 1:
		return a.switchRoleLocked(roles[0], true)
	default:
		return a.switchRoleLocked("", false)
	}
}

// SwitchRole activates a role. When the available set is non-empty and does
// not contain the role, the call is a silent no-op: it is invoked
// defensively from navigation hooks. An empty available set is permissive.
func (a *AppState) SwitchRole(role models.Role) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.switchRoleLocked(role, true)
}

// ClearRole drops the active role selection.
func (a *AppState) ClearRole() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.switchRoleLocked("", false)
}

func (a *AppState) switchRoleLocked(role models.Role, selecting bool) error {
	if selecting && len(a.availableRoles) > 0 && !models.RolesContain(a.availableRoles, role) {
		return nil
	}
	if !selecting {
		a.selectedRole = ""
		return a.store.ClearSelectedRole()
	}
	a.selectedRole = role
	return a.store.SetSelectedRole(role)
}

// SignOut clears the session, all caches, and the persistent store.
func (a *AppState) SignOut() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.token = ""
	a.mobile = ""
	a.profileName = ""
	a.selectedRole = ""
	a.availableRoles = nil
	a.droneCache = nil
	a.ownerDrones = nil
	a.bookingCache = nil
	a.ownerCache = nil
	a.errMsg = ""
	return a.store.Clear()
}

// RefreshData reloads the collections relevant to the active role. Owner:
// owned drones, then the owner directory, then bookings. Farmer: public
// catalog under the current filter, then bookings. No role: both drone
// caches are cleared locally without network calls. Sub-fetches are
// sequenced to avoid interleaved partial-state updates.
//
// The refresh is best-effort: any failure is recorded in the observable
// error message, and also returned for callers that want to propagate it.
func (a *AppState) RefreshData(ctx context.Context) error {
	a.mu.Lock()
	role := a.selectedRole
	a.loading = true
	a.mu.Unlock()

	var err error
	switch role {
	case models.RoleOwner:
		if err = a.LoadOwnerDrones(ctx); err == nil {
			if err = a.LoadOwners(ctx); err == nil {
				err = a.LoadBookings(ctx, "")
			}
		}
	case models.RoleFarmer:
		if err = a.LoadDrones(ctx, nil); err == nil {
			err = a.LoadBookings(ctx, "")
		}
	default:
		a.mu.Lock()
		a.droneCache = nil
		a.ownerDrones = nil
		a.mu.Unlock()
	}

	a.mu.Lock()
	a.loading = false
	if err != nil {
		a.errMsg = api.Message(err)
	} else {
		a.errMsg = ""
	}
	a.mu.Unlock()
	return err
}

// LoadDrones fetches the public catalog. A nil filter uses the current
// catalog filter translated to query parameters.
func (a *AppState) LoadDrones(ctx context.Context, filter *services.DroneFilter) error {
	var effective services.DroneFilter
	if filter != nil {
		effective = *filter
	} else {
		a.mu.Lock()
		effective = a.catalogFilter.ServerFilter(a.location)
		a.mu.Unlock()
	}
	items, err := a.drones.List(ctx, effective)
	if err != nil {
		return err
	}
	a.mu.Lock()
	a.droneCache = items
	a.mu.Unlock()
	return nil
}

// LoadOwnerDrones fetches the session owner's listings. No-op without a token.
func (a *AppState) LoadOwnerDrones(ctx context.Context) error {
	token := a.Token()
	if token == "" {
		return nil
	}
	items, err := a.drones.ListOwned(ctx, token)
	if err != nil {
		return err
	}
	a.mu.Lock()
	a.ownerDrones = items
	a.mu.Unlock()
	return nil
}

// LoadOwners fetches the owner directory. No-op without a token.
func (a *AppState) LoadOwners(ctx context.Context) error {
	token := a.Token()
	if token == "" {
		return nil
	}
	items, err := a.owners.List(ctx, token)
	if err != nil {
		return err
	}
	a.mu.Lock()
	a.ownerCache = items
	a.mu.Unlock()
	return nil
}

// LoadBookings fetches the caller's bookings, optionally filtered by status.
// No-op without a token.
func (a *AppState) LoadBookings(ctx context.Context, status string) error {
	token := a.Token()
	if token == "" {
		return nil
	}
	items, err := a.bookings.List(ctx, token, status)
	if err != nil {
		return err
	}
	a.mu.Lock()
	a.bookingCache = items
	a.mu.Unlock()
	return nil
}

// requireRole returns the current token after checking the active role,
// before any network call is issued.
func (a *AppState) requireRole(role models.Role) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.token == "" {
		return "", api.ErrMissingToken
	}
	if a.selectedRole != role {
		return "", api.ErrAuthorizationDenied
	}
	return a.token, nil
}

// CreateBooking places a booking as the active farmer, then reloads only
// the booking cache.
func (a *AppState) CreateBooking(ctx context.Context, droneID int64, farmerName string, durationHours int) (*models.Booking, error) {
	token, err := a.requireRole(models.RoleFarmer)
	if err != nil {
		return nil, err
	}
	booking, err := a.bookings.Create(ctx, token, models.BookingCreate{
		DroneID:       droneID,
		FarmerName:    farmerName,
		DurationHours: durationHours,
	})
	if err != nil {
		return nil, err
	}
	if err := a.LoadBookings(ctx, ""); err != nil {
		return nil, err
	}
	return booking, nil
}

// CreateDrone publishes a listing as the active owner, then reloads only
// the owner's drone cache.
func (a *AppState) CreateDrone(ctx context.Context, payload models.DroneCreate) (*models.Drone, error) {
	token, err := a.requireRole(models.RoleOwner)
	if err != nil {
		return nil, err
	}
	drone, err := a.drones.Create(ctx, token, payload)
	if err != nil {
		return nil, err
	}
	if err := a.LoadOwnerDrones(ctx); err != nil {
		return nil, err
	}
	return drone, nil
}

// UpdateAvailability sets a drone's status as the active owner. Concurrent
// updates to the same drone are serialized.
func (a *AppState) UpdateAvailability(ctx context.Context, droneID int64, status string) error {
	token, err := a.requireRole(models.RoleOwner)
	if err != nil {
		return err
	}
	unlock := a.entityLocks.lock(fmt.Sprintf("drone/%d", droneID))
	defer unlock()
	if err := a.drones.UpdateAvailability(ctx, token, droneID, status); err != nil {
		return err
	}
	return a.LoadOwnerDrones(ctx)
}

// UpdateBookingStatus transitions a booking as the active owner. Concurrent
// updates to the same booking are serialized.
func (a *AppState) UpdateBookingStatus(ctx context.Context, bookingID int64, status string) error {
	token, err := a.requireRole(models.RoleOwner)
	if err != nil {
		return err
	}
	unlock := a.entityLocks.lock(fmt.Sprintf("booking/%d", bookingID))
	defer unlock()
	if _, err := a.bookings.UpdateStatus(ctx, token, bookingID, status); err != nil {
		return err
	}
	return a.LoadBookings(ctx, "")
}

// SetCatalogFilter replaces the farmer catalog filter.
func (a *AppState) SetCatalogFilter(f CatalogFilter) {
	a.mu.Lock()
	a.catalogFilter = f
	a.mu.Unlock()
}

// CatalogFilter returns the current farmer catalog filter.
func (a *AppState) CatalogFilter() CatalogFilter {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.catalogFilter
}

// SetLocation records the user's resolved location for distance filtering.
func (a *AppState) SetLocation(c Coordinates) {
	a.mu.Lock()
	a.location = &c
	a.mu.Unlock()
}

// DisplayedDrones applies the catalog filter and sort to the cached public
// catalog. Distance steps are skipped when no location is resolved.
func (a *AppState) DisplayedDrones() []models.Drone {
	a.mu.Lock()
	drones := append([]models.Drone(nil), a.droneCache...)
	filter := a.catalogFilter
	loc := a.location
	a.mu.Unlock()
	return filter.Apply(drones, loc)
}

// CurrentOwner resolves the session's owner record by mobile number from
// the cached directory.
func (a *AppState) CurrentOwner() (*models.Owner, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for i := range a.ownerCache {
		if a.ownerCache[i].Mobile == a.mobile {
			o := a.ownerCache[i]
			return &o, true
		}
	}
	return nil, false
}

// PendingBookingCount counts cached bookings still awaiting a decision.
func (a *AppState) PendingBookingCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	n := 0
	for i := range a.bookingCache {
		if s, ok := a.bookingCache[i].NormalizedStatus(); ok && s == models.BookingStatusPending {
			n++
		}
	}
	return n
}

// Token returns the current bearer token, empty when signed out.
func (a *AppState) Token() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.token
}

// Mobile returns the session's mobile number.
func (a *AppState) Mobile() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.mobile
}

// ProfileName returns the session's display name.
func (a *AppState) ProfileName() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.profileName
}

// SelectedRole returns the active role, false when none is selected.
func (a *AppState) SelectedRole() (models.Role, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.selectedRole, a.selectedRole != ""
}

// AvailableRoles returns a copy of the account's role set.
func (a *AppState) AvailableRoles() []models.Role {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]models.Role(nil), a.availableRoles...)
}

// Drones returns a copy of the cached public catalog.
func (a *AppState) Drones() []models.Drone {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]models.Drone(nil), a.droneCache...)
}

// OwnerDrones returns a copy of the cached owner listings.
func (a *AppState) OwnerDrones() []models.Drone {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]models.Drone(nil), a.ownerDrones...)
}

// Bookings returns a copy of the cached bookings.
func (a *AppState) Bookings() []models.Booking {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]models.Booking(nil), a.bookingCache...)
}

// Owners returns a copy of the cached owner directory.
func (a *AppState) Owners() []models.Owner {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]models.Owner(nil), a.ownerCache...)
}

// IsLoading reports whether a refresh is in flight.
func (a *AppState) IsLoading() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.loading
}

// ErrorMessage returns the last observable error, empty when none.
func (a *AppState) ErrorMessage() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.errMsg
}

// RecordError surfaces an error from a direct mutation into the shared
// observable message, as the alert UI does.
func (a *AppState) RecordError(err error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.errMsg = api.Message(err)
}

// ClearError dismisses the observable error message.
func (a *AppState) ClearError() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.errMsg = ""
}

// BaseURL exposes the backend base URL for resolving relative asset paths.
func (a *AppState) BaseURL() string { return a.baseURL }

// keyedMutex hands out one mutex per entity key.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func (k *keyedMutex) lock(key string) func() {
	k.mu.Lock()
	if k.locks == nil {
		k.locks = make(map[string]*sync.Mutex)
	}
	l, ok := k.locks[key]
	if !ok {
		l = &sync.Mutex{}
		k.locks[key] = l
	}
	k.mu.Unlock()
	l.Lock()
	return l.Unlock
}
