// Package mock provides in-memory implementations of the database
// repository interfaces for testing.
package mock

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/eventlens/eventlens/internal/database"
	"github.com/eventlens/eventlens/internal/face"
	"github.com/eventlens/eventlens/internal/match"
)

// FaceStore is an in-memory implementation of database.FaceWriter.
// Set the *Error fields to inject failures; the *Calls slices record
// every mutating call for assertions.
type FaceStore struct {
	mu        sync.RWMutex
	faces     map[string][]database.StoredFace // keyed by photo UID
	processed map[string]int                   // photo UID -> face count
	nextID    int64

	// Error injection
	GetFacesError      error
	SaveFacesError     error
	MarkProcessedError error
	DeleteFacesError   error
	ListError          error

	// Call tracking
	SaveFacesCalls        []string
	MarkProcessedCalls    []string
	DeleteFacesCalls      []string
	SearchCandidatesCalls int

	// Candidates backs SearchCandidates directly when set; otherwise
	// candidates are derived from the stored faces.
	Candidates []match.Candidate
}

// NewFaceStore creates an empty in-memory face store.
func NewFaceStore() *FaceStore {
	return &FaceStore{
		faces:     make(map[string][]database.StoredFace),
		processed: make(map[string]int),
	}
}

// AddFace seeds a face into the store without marking the photo processed.
func (m *FaceStore) AddFace(sf database.StoredFace) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if sf.ID == 0 {
		m.nextID++
		sf.ID = m.nextID
	}
	m.faces[sf.PhotoUID] = append(m.faces[sf.PhotoUID], sf)
}

// GetFaces retrieves all faces for a photo
func (m *FaceStore) GetFaces(ctx context.Context, photoUID string) ([]database.StoredFace, error) {
	if m.GetFacesError != nil {
		return nil, m.GetFacesError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.faces[photoUID], nil
}

// HasFaces checks if faces have been computed for a photo
func (m *FaceStore) HasFaces(ctx context.Context, photoUID string) (bool, error) {
	if m.GetFacesError != nil {
		return false, m.GetFacesError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.faces[photoUID]) > 0, nil
}

// IsFacesProcessed checks if face detection has been run for a photo
func (m *FaceStore) IsFacesProcessed(ctx context.Context, photoUID string) (bool, error) {
	if m.GetFacesError != nil {
		return false, m.GetFacesError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.processed[photoUID]
	return ok, nil
}

// Count returns the total number of faces stored
func (m *FaceStore) Count(ctx context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	total := 0
	for _, faces := range m.faces {
		total += len(faces)
	}
	return total, nil
}

// CountPhotos returns the number of distinct photos with faces
func (m *FaceStore) CountPhotos(ctx context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	count := 0
	for _, faces := range m.faces {
		if len(faces) > 0 {
			count++
		}
	}
	return count, nil
}

// candidateList returns the seeded candidates, or derives them from the
// stored faces.
func (m *FaceStore) candidateList() []match.Candidate {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.Candidates != nil {
		return m.Candidates
	}
	uids := make([]string, 0, len(m.faces))
	for uid := range m.faces {
		uids = append(uids, uid)
	}
	sort.Strings(uids)
	var out []match.Candidate
	for _, uid := range uids {
		for _, sf := range m.faces[uid] {
			out = append(out, match.Candidate{
				FaceID:   sf.ID,
				PhotoUID: sf.PhotoUID,
				Encoding: sf.Encoding,
			})
		}
	}
	return out
}

// SearchCandidates returns candidates within maxDistance of the query
// embedding, nearest first, mirroring the index-backed retrieval of the
// real backend.
func (m *FaceStore) SearchCandidates(ctx context.Context, embedding []float32, eventUID string, limit int, maxDistance float64) ([]match.Candidate, error) {
	m.mu.Lock()
	m.SearchCandidatesCalls++
	m.mu.Unlock()
	if m.ListError != nil {
		return nil, m.ListError
	}

	base := m.candidateList()

	type scored struct {
		c match.Candidate
		d float64
	}
	var within []scored
	for _, c := range base {
		if eventUID != "" && c.EventUID != eventUID {
			continue
		}
		d := face.EuclideanDistance(embedding, face.DecodeEmbedding(c.Encoding))
		if d <= maxDistance {
			within = append(within, scored{c, d})
		}
	}
	sort.SliceStable(within, func(i, j int) bool { return within[i].d < within[j].d })

	if limit <= 0 {
		limit = database.DefaultCandidateLimit
	}
	if len(within) > limit {
		within = within[:limit]
	}
	out := make([]match.Candidate, len(within))
	for i := range within {
		out[i] = within[i].c
	}
	return out, nil
}

// FindSimilarWithDistance finds similar faces by Euclidean distance
func (m *FaceStore) FindSimilarWithDistance(ctx context.Context, embedding []float32, limit int, maxDistance float64) ([]database.StoredFace, []float64, error) {
	if m.ListError != nil {
		return nil, nil, m.ListError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	type scored struct {
		f database.StoredFace
		d float64
	}
	var all []scored
	for _, faces := range m.faces {
		for _, sf := range faces {
			d := face.EuclideanDistance(embedding, sf.Embedding)
			if d <= maxDistance {
				all = append(all, scored{sf, d})
			}
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].d < all[j].d })
	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}
	faces := make([]database.StoredFace, len(all))
	distances := make([]float64, len(all))
	for i, s := range all {
		faces[i] = s.f
		distances[i] = s.d
	}
	return faces, distances, nil
}

// SaveFaces stores faces for a photo and marks it processed
func (m *FaceStore) SaveFaces(ctx context.Context, photoUID string, faces []database.StoredFace) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SaveFacesCalls = append(m.SaveFacesCalls, photoUID)
	if m.SaveFacesError != nil {
		return m.SaveFacesError
	}
	stored := make([]database.StoredFace, len(faces))
	for i, sf := range faces {
		m.nextID++
		sf.ID = m.nextID
		sf.PhotoUID = photoUID
		stored[i] = sf
	}
	m.faces[photoUID] = stored
	m.processed[photoUID] = len(stored)
	return nil
}

// MarkFacesProcessed records the processing state for a photo
func (m *FaceStore) MarkFacesProcessed(ctx context.Context, photoUID string, faceCount int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.MarkProcessedCalls = append(m.MarkProcessedCalls, photoUID)
	if m.MarkProcessedError != nil {
		return m.MarkProcessedError
	}
	m.processed[photoUID] = faceCount
	return nil
}

// DeleteFacesByPhoto removes all faces for a photo
func (m *FaceStore) DeleteFacesByPhoto(ctx context.Context, photoUID string) ([]int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DeleteFacesCalls = append(m.DeleteFacesCalls, photoUID)
	if m.DeleteFacesError != nil {
		return nil, m.DeleteFacesError
	}
	var ids []int64
	for _, sf := range m.faces[photoUID] {
		ids = append(ids, sf.ID)
	}
	delete(m.faces, photoUID)
	delete(m.processed, photoUID)
	return ids, nil
}

// PhotoStore is an in-memory implementation of database.PhotoWriter.
type PhotoStore struct {
	mu     sync.RWMutex
	photos map[string]*database.Photo

	// Error injection
	GetError    error
	CreateError error
	UpdateError error
	ListError   error

	// Call tracking
	CreateCalls        []string
	UpdateCaptionCalls []string
}

// NewPhotoStore creates an empty in-memory photo store.
func NewPhotoStore() *PhotoStore {
	return &PhotoStore{photos: make(map[string]*database.Photo)}
}

// AddPhoto seeds a photo into the store.
func (m *PhotoStore) AddPhoto(photo database.Photo) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.photos[photo.UID] = &photo
}

// GetPhoto retrieves a photo by UID
func (m *PhotoStore) GetPhoto(ctx context.Context, uid string) (*database.Photo, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.photos[uid]
	if !ok {
		return nil, fmt.Errorf("photo not found: %s", uid)
	}
	cp := *p
	return &cp, nil
}

// ListPhotosByEvent returns all photos for an event
func (m *PhotoStore) ListPhotosByEvent(ctx context.Context, eventUID string) ([]database.Photo, error) {
	if m.ListError != nil {
		return nil, m.ListError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.list(eventUID, false, 0), nil
}

// ListUnprocessed returns photos whose faces have not been processed
func (m *PhotoStore) ListUnprocessed(ctx context.Context, eventUID string, limit int) ([]database.Photo, error) {
	if m.ListError != nil {
		return nil, m.ListError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.list(eventUID, true, limit), nil
}

func (m *PhotoStore) list(eventUID string, unprocessedOnly bool, limit int) []database.Photo {
	uids := make([]string, 0, len(m.photos))
	for uid := range m.photos {
		uids = append(uids, uid)
	}
	sort.Strings(uids)
	var out []database.Photo
	for _, uid := range uids {
		p := m.photos[uid]
		if eventUID != "" && p.EventUID != eventUID {
			continue
		}
		if unprocessedOnly && p.FacesProcessed {
			continue
		}
		out = append(out, *p)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out
}

// CountPhotos returns the total number of photos
func (m *PhotoStore) CountPhotos(ctx context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.photos), nil
}

// CountProcessed returns the number of photos with faces processed
func (m *PhotoStore) CountProcessed(ctx context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	count := 0
	for _, p := range m.photos {
		if p.FacesProcessed {
			count++
		}
	}
	return count, nil
}

// CreatePhoto stores a new photo
func (m *PhotoStore) CreatePhoto(ctx context.Context, photo *database.Photo) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CreateCalls = append(m.CreateCalls, photo.UID)
	if m.CreateError != nil {
		return m.CreateError
	}
	cp := *photo
	m.photos[photo.UID] = &cp
	return nil
}

// UpdateCaption sets the caption for a photo
func (m *PhotoStore) UpdateCaption(ctx context.Context, uid, caption string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpdateCaptionCalls = append(m.UpdateCaptionCalls, uid)
	if m.UpdateError != nil {
		return m.UpdateError
	}
	p, ok := m.photos[uid]
	if !ok {
		return fmt.Errorf("photo not found: %s", uid)
	}
	p.Caption = caption
	return nil
}

// MarkProcessed flips the processing state on a stored photo, mirroring
// what the real backend does when faces are saved.
func (m *PhotoStore) MarkProcessed(uid string, faceCount int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.photos[uid]; ok {
		p.FacesProcessed = true
		p.FaceCount = faceCount
	}
}

// EventStore is an in-memory implementation of database.EventWriter.
type EventStore struct {
	mu     sync.RWMutex
	events map[string]*database.Event

	// Error injection
	GetError    error
	CreateError error

	// Call tracking
	CreateCalls []string
}

// NewEventStore creates an empty in-memory event store.
func NewEventStore() *EventStore {
	return &EventStore{events: make(map[string]*database.Event)}
}

// AddEvent seeds an event into the store.
func (m *EventStore) AddEvent(event database.Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events[event.UID] = &event
}

// GetEvent retrieves an event by UID
func (m *EventStore) GetEvent(ctx context.Context, uid string) (*database.Event, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.events[uid]
	if !ok {
		return nil, fmt.Errorf("event not found: %s", uid)
	}
	cp := *e
	return &cp, nil
}

// GetEventBySlug retrieves an event by its URL slug
func (m *EventStore) GetEventBySlug(ctx context.Context, slug string) (*database.Event, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, e := range m.events {
		if e.Slug == slug {
			cp := *e
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("event not found: %s", slug)
}

// ListEvents returns all events
func (m *EventStore) ListEvents(ctx context.Context) ([]database.Event, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	uids := make([]string, 0, len(m.events))
	for uid := range m.events {
		uids = append(uids, uid)
	}
	sort.Strings(uids)
	out := make([]database.Event, 0, len(uids))
	for _, uid := range uids {
		out = append(out, *m.events[uid])
	}
	return out, nil
}

// CreateEvent stores a new event
func (m *EventStore) CreateEvent(ctx context.Context, event *database.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CreateCalls = append(m.CreateCalls, event.UID)
	if m.CreateError != nil {
		return m.CreateError
	}
	cp := *event
	m.events[event.UID] = &cp
	return nil
}

// SearchLog is an in-memory implementation of database.SearchLogWriter.
type SearchLog struct {
	mu      sync.Mutex
	Records []database.SearchRecord

	// Error injection
	RecordError error
}

// RecordSearch appends a search record
func (m *SearchLog) RecordSearch(ctx context.Context, rec *database.SearchRecord) error {
	if m.RecordError != nil {
		return m.RecordError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Records = append(m.Records, *rec)
	return nil
}

// CountSearches returns the number of recorded searches
func (m *SearchLog) CountSearches(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Records), nil
}

// Verify interface compliance
var (
	_ database.FaceReader      = (*FaceStore)(nil)
	_ database.FaceWriter      = (*FaceStore)(nil)
	_ database.PhotoReader     = (*PhotoStore)(nil)
	_ database.PhotoWriter     = (*PhotoStore)(nil)
	_ database.EventReader     = (*EventStore)(nil)
	_ database.EventWriter     = (*EventStore)(nil)
	_ database.SearchLogWriter = (*SearchLog)(nil)
)
