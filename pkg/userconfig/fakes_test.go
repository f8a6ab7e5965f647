package userconfig

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"sync"
	"time"
)

// fakeFileStore is an in-memory FileStore recording call counts.
type fakeFileStore struct {
	mu    sync.Mutex
	files map[string]map[string][]byte // containerID -> name -> JSON

	gets    int
	sets    int
	deletes int
	lists   int

	getErr    error
	setErr    error
	deleteErr error
	listErr   error
}

func newFakeFileStore() *fakeFileStore {
	return &fakeFileStore{files: make(map[string]map[string][]byte)}
}

// seed writes a file directly, bypassing the FileStore interface.
func (f *fakeFileStore) seed(containerID, name string, content any) {
	data, err := json.Marshal(content)
	if err != nil {
		panic(err)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.files[containerID] == nil {
		f.files[containerID] = make(map[string][]byte)
	}
	f.files[containerID][name] = data
}

func (f *fakeFileStore) has(containerID, name string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.files[containerID][name]
	return ok
}

func (f *fakeFileStore) GetFileContent(ctx context.Context, containerID, name string, out any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gets++
	if f.getErr != nil {
		return f.getErr
	}
	data, ok := f.files[containerID][name]
	if !ok {
		return fmt.Errorf("%s/%s: %w", containerID, name, ErrFileNotFound)
	}
	return json.Unmarshal(data, out)
}

func (f *fakeFileStore) SetFileContent(ctx context.Context, containerID, name string, content any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sets++
	if f.setErr != nil {
		return f.setErr
	}
	data, err := json.Marshal(content)
	if err != nil {
		return err
	}
	if f.files[containerID] == nil {
		f.files[containerID] = make(map[string][]byte)
	}
	f.files[containerID][name] = data
	return nil
}

func (f *fakeFileStore) DeleteFile(ctx context.Context, containerID, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletes++
	if f.deleteErr != nil {
		return f.deleteErr
	}
	if _, ok := f.files[containerID][name]; !ok {
		return fmt.Errorf("%s/%s: %w", containerID, name, ErrFileNotFound)
	}
	delete(f.files[containerID], name)
	return nil
}

func (f *fakeFileStore) ListFiles(ctx context.Context, containerID string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists++
	if f.listErr != nil {
		return nil, f.listErr
	}
	names := make([]string, 0, len(f.files[containerID]))
	for name := range f.files[containerID] {
		names = append(names, name)
	}
	return names, nil
}

// fakeDirectory is an in-memory DirectoryClient recording membership calls.
type fakeDirectory struct {
	mu     sync.Mutex
	users  map[string]DirectoryUser
	groups []DirectoryGroup
	nextID int

	// membership calls in order, as "groupID/userID"
	added   []string
	removed []string

	listErr   error
	createErr error
	deleteErr error
	addErr    error
	removeErr error
}

func newFakeDirectory() *fakeDirectory {
	return &fakeDirectory{users: make(map[string]DirectoryUser)}
}

func (d *fakeDirectory) addUser(id, userName string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.users[id] = DirectoryUser{ID: id, UserName: userName, Active: true}
}

func (d *fakeDirectory) ListUsers(ctx context.Context, q UserQuery) ([]DirectoryUser, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.listErr != nil {
		return nil, d.listErr
	}
	var out []DirectoryUser
	for _, u := range d.users {
		if q.UserName != "" && u.UserName != q.UserName {
			continue
		}
		out = append(out, u)
	}
	return out, nil
}

func (d *fakeDirectory) CreateUser(ctx context.Context, nu NewDirectoryUser) (*DirectoryUser, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.createErr != nil {
		return nil, d.createErr
	}
	d.nextID++
	u := DirectoryUser{
		ID:         "uid-" + strconv.Itoa(d.nextID),
		UserName:   nu.UserName,
		Active:     nu.Active,
		Subtenants: nu.Subtenants,
	}
	d.users[u.ID] = u
	return &u, nil
}

func (d *fakeDirectory) DeleteUser(ctx context.Context, userID string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.deleteErr != nil {
		return d.deleteErr
	}
	delete(d.users, userID)
	return nil
}

func (d *fakeDirectory) ListGroups(ctx context.Context) ([]DirectoryGroup, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.groups, nil
}

func (d *fakeDirectory) AddUserToGroup(ctx context.Context, groupID, userID string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.addErr != nil {
		return d.addErr
	}
	d.added = append(d.added, groupID+"/"+userID)
	return nil
}

func (d *fakeDirectory) RemoveUserFromGroup(ctx context.Context, groupID, userID string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.removeErr != nil {
		return d.removeErr
	}
	d.removed = append(d.removed, groupID+"/"+userID)
	return nil
}

// fakeAssets serves a fixed asset list.
type fakeAssets struct {
	assets []Asset
	err    error
}

func (a *fakeAssets) ListAssets(ctx context.Context, typeID string) ([]Asset, error) {
	if a.err != nil {
		return nil, a.err
	}
	return a.assets, nil
}

// recordingMetrics counts Metrics callbacks.
type recordingMetrics struct {
	mu      sync.Mutex
	hits    int
	misses  int
	loads   int
	loadErr int
	entries int
}

func (m *recordingMetrics) ReadHit() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hits++
}

func (m *recordingMetrics) ReadMiss() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.misses++
}

func (m *recordingMetrics) StoreLoad(d time.Duration, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loads++
	if err != nil {
		m.loadErr++
	}
}

func (m *recordingMetrics) Entries(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = n
}

// record builds a valid UserConfigRecord covering the given plants.
func record(userName string, role Role, plants ...string) *UserConfigRecord {
	r := &UserConfigRecord{
		Data:     map[string]any{},
		Config:   map[string]any{},
		UserName: userName,
		Permissions: PermissionSet{
			Role:   role,
			Plants: map[string]PlantPermission{},
		},
	}
	perm := PlantUser
	if role.IsAdmin() {
		perm = PlantAdmin
	}
	for _, plant := range plants {
		r.Data[plant] = map[string]any{"name": plant}
		r.Config[plant] = map[string]any{"enabled": true}
		r.Permissions.Plants[plant] = perm
	}
	return r
}

// tenantGroups provisions ids for every addressable group name.
func tenantGroups() map[string]string {
	return map[string]string{
		GroupGlobalAdmin:   "g-global-admin",
		GroupGlobalUser:    "g-global-user",
		GroupLocalAdmin:    "g-local-admin",
		GroupLocalUser:     "g-local-user",
		GroupStandardUser:  "g-standard",
		GroupSubtenantUser: "g-subtenant",
	}
}
