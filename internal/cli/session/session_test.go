package session

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HolmesInc/data-storage/internal/cli/api"
)

// fakeGateway is an in-memory Gateway backed by maps. Handlers can be
// overridden per test; unset operations fall back to the seeded data.
type fakeGateway struct {
	rooms   map[string]*api.RoomDetail
	folders map[string]*api.FolderDetail
	shares  map[string][]api.Share
	calls   []string

	uploadErr   error
	downloadErr error
	failWith    error
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		rooms:   map[string]*api.RoomDetail{},
		folders: map[string]*api.FolderDetail{},
		shares:  map[string][]api.Share{},
	}
}

func unauthorized() error {
	return &api.APIError{Status: http.StatusUnauthorized, Message: "invalid or expired token"}
}

func (g *fakeGateway) record(op string) {
	g.calls = append(g.calls, op)
}

func (g *fakeGateway) seedRoom(id, name string, folders ...api.Folder) {
	g.rooms[id] = &api.RoomDetail{
		Room:    api.Room{ID: id, Name: name},
		Folders: folders,
		Files:   []api.File{},
	}
}

func (g *fakeGateway) seedFolder(id, name, roomID string, parentID *string) {
	g.folders[id] = &api.FolderDetail{
		Folder:  api.Folder{ID: id, Name: name, RoomID: roomID, ParentID: parentID},
		Folders: []api.Folder{},
		Files:   []api.File{},
	}
}

func (g *fakeGateway) GetRoom(roomID string) (*api.RoomDetail, error) {
	g.record("GetRoom " + roomID)
	if g.failWith != nil {
		return nil, g.failWith
	}
	detail, ok := g.rooms[roomID]
	if !ok {
		return nil, &api.APIError{Status: http.StatusNotFound, Message: "room not found"}
	}
	return detail, nil
}

func (g *fakeGateway) CreateRoom(name, description string) (*api.Room, error) {
	g.record("CreateRoom " + name)
	if g.failWith != nil {
		return nil, g.failWith
	}
	room := api.Room{ID: "room-" + name, Name: name, Description: description}
	g.seedRoom(room.ID, room.Name)
	return &room, nil
}

func (g *fakeGateway) UpdateRoom(roomID string, name, description *string) (*api.Room, error) {
	g.record("UpdateRoom " + roomID)
	if g.failWith != nil {
		return nil, g.failWith
	}
	detail, ok := g.rooms[roomID]
	if !ok {
		return nil, &api.APIError{Status: http.StatusNotFound, Message: "room not found"}
	}
	if name != nil {
		detail.Room.Name = *name
	}
	if description != nil {
		detail.Room.Description = *description
	}
	return &detail.Room, nil
}

func (g *fakeGateway) DeleteRoom(roomID string) error {
	g.record("DeleteRoom " + roomID)
	if g.failWith != nil {
		return g.failWith
	}
	delete(g.rooms, roomID)
	return nil
}

func (g *fakeGateway) GetFolder(folderID string) (*api.FolderDetail, error) {
	g.record("GetFolder " + folderID)
	if g.failWith != nil {
		return nil, g.failWith
	}
	detail, ok := g.folders[folderID]
	if !ok {
		return nil, &api.APIError{Status: http.StatusNotFound, Message: "folder not found"}
	}
	return detail, nil
}

func (g *fakeGateway) CreateFolder(name, roomID string, parentID *string) (*api.Folder, error) {
	g.record("CreateFolder " + name)
	if g.failWith != nil {
		return nil, g.failWith
	}
	id := "folder-" + name
	g.seedFolder(id, name, roomID, parentID)
	return &g.folders[id].Folder, nil
}

func (g *fakeGateway) RenameFolder(folderID, name string) (*api.Folder, error) {
	g.record("RenameFolder " + folderID)
	if g.failWith != nil {
		return nil, g.failWith
	}
	detail, ok := g.folders[folderID]
	if !ok {
		return nil, &api.APIError{Status: http.StatusNotFound, Message: "folder not found"}
	}
	detail.Folder.Name = name
	return &detail.Folder, nil
}

func (g *fakeGateway) DeleteFolder(folderID string) error {
	g.record("DeleteFolder " + folderID)
	if g.failWith != nil {
		return g.failWith
	}
	delete(g.folders, folderID)
	return nil
}

func (g *fakeGateway) UploadFile(localPath, folderID, name string) (*api.File, error) {
	g.record("UploadFile " + localPath)
	if g.uploadErr != nil {
		return nil, g.uploadErr
	}
	return &api.File{ID: "file-" + name, Name: name, FolderID: folderID}, nil
}

func (g *fakeGateway) RenameFile(fileID, name string) (*api.File, error) {
	g.record("RenameFile " + fileID)
	if g.failWith != nil {
		return nil, g.failWith
	}
	return &api.File{ID: fileID, Name: name}, nil
}

func (g *fakeGateway) DeleteFile(fileID string) error {
	g.record("DeleteFile " + fileID)
	return g.failWith
}

func (g *fakeGateway) CreateShare(fileID string, expiresAt *time.Time) (*api.Share, error) {
	g.record("CreateShare " + fileID)
	if g.failWith != nil {
		return nil, g.failWith
	}
	share := api.Share{
		ID:        fmt.Sprintf("share-%d", len(g.shares[fileID])+1),
		FileID:    fileID,
		Token:     fmt.Sprintf("token-%s-%d", fileID, len(g.shares[fileID])+1),
		ExpiresAt: expiresAt,
	}
	g.shares[fileID] = append(g.shares[fileID], share)
	return &share, nil
}

func (g *fakeGateway) ListShares(fileID string) ([]api.Share, error) {
	g.record("ListShares " + fileID)
	if g.failWith != nil {
		return nil, g.failWith
	}
	return g.shares[fileID], nil
}

func (g *fakeGateway) DeleteShare(shareID string) error {
	g.record("DeleteShare " + shareID)
	if g.failWith != nil {
		return g.failWith
	}
	for fileID, shares := range g.shares {
		for i, s := range shares {
			if s.ID == shareID {
				g.shares[fileID] = append(shares[:i], shares[i+1:]...)
				return nil
			}
		}
	}
	return &api.APIError{Status: http.StatusNotFound, Message: "share not found"}
}

func (g *fakeGateway) ShareDownloadURL(token string) string {
	return "http://test/api/v0/files/share/" + token + "/download"
}

func (g *fakeGateway) DownloadToFile(rawURL, dest string) error {
	g.record("DownloadToFile " + rawURL)
	return g.downloadErr
}

// assertNavInvariant checks that FolderID is nil exactly when the breadcrumb
// is empty, and otherwise matches the last crumb.
func assertNavInvariant(t *testing.T, state NavigationState) {
	t.Helper()
	if len(state.Breadcrumb) == 0 {
		assert.Nil(t, state.FolderID, "empty breadcrumb requires nil FolderID")
		return
	}
	require.NotNil(t, state.FolderID, "non-empty breadcrumb requires FolderID")
	assert.Equal(t, state.Breadcrumb[len(state.Breadcrumb)-1].ID, *state.FolderID)
}

func newTestSession(t *testing.T) (*Session, *fakeGateway) {
	t.Helper()
	gw := newFakeGateway()
	root := api.Folder{ID: "f-root", Name: "Financials", RoomID: "r1"}
	parentID := "f-root"
	nested := api.Folder{ID: "f-nested", Name: "2024", RoomID: "r1", ParentID: &parentID}
	gw.seedRoom("r1", "Project Falcon", root, nested)
	gw.seedFolder("f-root", "Financials", "r1", nil)
	gw.seedFolder("f-nested", "2024", "r1", &parentID)
	gw.folders["f-root"].Folders = []api.Folder{nested}
	return New(gw, NavigationState{}), gw
}

func TestSelectRoomPositionsAtRoot(t *testing.T) {
	sess, _ := newTestSession(t)

	require.NoError(t, sess.SelectRoom("r1"))

	assert.Equal(t, "r1", sess.ActiveRoom())
	assert.True(t, sess.State().AtRoot())
	assertNavInvariant(t, sess.State())

	// the room view shows only the top level of the flat folder list
	view := sess.View()
	require.Len(t, view.Folders, 1)
	assert.Equal(t, "f-root", view.Folders[0].ID)
}

func TestEnterFolderExtendsBreadcrumb(t *testing.T) {
	sess, _ := newTestSession(t)
	require.NoError(t, sess.SelectRoom("r1"))

	require.NoError(t, sess.EnterFolder("f-root"))
	assertNavInvariant(t, sess.State())
	require.NoError(t, sess.EnterFolder("f-nested"))
	assertNavInvariant(t, sess.State())

	crumbs := sess.Breadcrumb()
	require.Len(t, crumbs, 2)
	assert.Equal(t, "Financials", crumbs[0].Name)
	assert.Equal(t, "2024", crumbs[1].Name)
}

func TestEnterFolderRequiresRoom(t *testing.T) {
	sess, _ := newTestSession(t)
	assert.ErrorIs(t, sess.EnterFolder("f-root"), ErrNoRoom)
}

func TestEnterFolderRejectsForeignRoom(t *testing.T) {
	sess, gw := newTestSession(t)
	gw.seedRoom("r2", "Other Room")
	gw.seedFolder("f-other", "Elsewhere", "r2", nil)
	require.NoError(t, sess.SelectRoom("r1"))

	err := sess.EnterFolder("f-other")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "another room")
	assert.True(t, sess.State().AtRoot(), "position must be unchanged after rejection")
}

func TestGoBackWalksUpAndStopsAtRoot(t *testing.T) {
	sess, _ := newTestSession(t)
	require.NoError(t, sess.SelectRoom("r1"))
	require.NoError(t, sess.EnterFolder("f-root"))
	require.NoError(t, sess.EnterFolder("f-nested"))

	require.NoError(t, sess.GoBack())
	assertNavInvariant(t, sess.State())
	require.NotNil(t, sess.State().FolderID)
	assert.Equal(t, "f-root", *sess.State().FolderID)

	require.NoError(t, sess.GoBack())
	assert.True(t, sess.State().AtRoot())
}

func TestGoBackAtRootRefetchesRoom(t *testing.T) {
	sess, gw := newTestSession(t)
	require.NoError(t, sess.SelectRoom("r1"))

	roomFetches := func() int {
		n := 0
		for _, call := range gw.calls {
			if call == "GetRoom r1" {
				n++
			}
		}
		return n
	}
	before := roomFetches()

	require.NoError(t, sess.GoBack())
	assert.True(t, sess.State().AtRoot(), "position stays at the room root")
	assert.Equal(t, before+1, roomFetches(), "the root view must be re-fetched")

	// a rename made elsewhere shows up after going back
	gw.rooms["r1"].Room.Name = "Renamed Elsewhere"
	require.NoError(t, sess.GoBack())
	assert.Equal(t, "Renamed Elsewhere", sess.State().RoomName)
}

func TestJumpToBreadcrumb(t *testing.T) {
	sess, _ := newTestSession(t)
	require.NoError(t, sess.SelectRoom("r1"))
	require.NoError(t, sess.EnterFolder("f-root"))
	require.NoError(t, sess.EnterFolder("f-nested"))

	require.NoError(t, sess.JumpToBreadcrumb(0))
	assertNavInvariant(t, sess.State())
	require.Len(t, sess.Breadcrumb(), 1)
	assert.Equal(t, "f-root", *sess.State().FolderID)

	require.NoError(t, sess.JumpToBreadcrumb(-1))
	assert.True(t, sess.State().AtRoot())
	assertNavInvariant(t, sess.State())
}

func TestJumpToBreadcrumbOutOfRange(t *testing.T) {
	sess, _ := newTestSession(t)
	require.NoError(t, sess.SelectRoom("r1"))
	require.NoError(t, sess.EnterFolder("f-root"))

	assert.Error(t, sess.JumpToBreadcrumb(5))
	assert.Error(t, sess.JumpToBreadcrumb(-2), "only -1 addresses the room root")
}

func TestRefreshUpdatesCrumbAfterRename(t *testing.T) {
	sess, gw := newTestSession(t)
	require.NoError(t, sess.SelectRoom("r1"))
	require.NoError(t, sess.EnterFolder("f-root"))

	_, err := sess.RenameFolder("f-root", "Renamed")
	require.NoError(t, err)

	crumbs := sess.Breadcrumb()
	require.Len(t, crumbs, 1)
	assert.Equal(t, "Renamed", crumbs[0].Name)
	assert.Equal(t, "Renamed", gw.folders["f-root"].Folder.Name)
}

func TestUnauthorizedMapsToSessionExpired(t *testing.T) {
	sess, gw := newTestSession(t)
	gw.failWith = unauthorized()

	assert.ErrorIs(t, sess.SelectRoom("r1"), ErrSessionExpired)
}

func TestDeleteActiveRoomResetsSession(t *testing.T) {
	sess, _ := newTestSession(t)
	require.NoError(t, sess.SelectRoom("r1"))
	require.NoError(t, sess.EnterFolder("f-root"))

	require.NoError(t, sess.DeleteRoom("r1"))
	assert.Empty(t, sess.ActiveRoom())
	assert.True(t, sess.State().AtRoot())
	assert.Empty(t, sess.Breadcrumb())
}

func TestDeleteOtherRoomKeepsSession(t *testing.T) {
	sess, gw := newTestSession(t)
	gw.seedRoom("r2", "Other Room")
	require.NoError(t, sess.SelectRoom("r1"))

	require.NoError(t, sess.DeleteRoom("r2"))
	assert.Equal(t, "r1", sess.ActiveRoom())
}

func TestDeleteFolderInsideBreadcrumbResetsToRoot(t *testing.T) {
	sess, _ := newTestSession(t)
	require.NoError(t, sess.SelectRoom("r1"))
	require.NoError(t, sess.EnterFolder("f-root"))
	require.NoError(t, sess.EnterFolder("f-nested"))

	require.NoError(t, sess.DeleteFolder("f-root"))
	assert.True(t, sess.State().AtRoot())
	assert.Empty(t, sess.Breadcrumb())
	assertNavInvariant(t, sess.State())
}

func TestDeleteUnrelatedFolderKeepsPosition(t *testing.T) {
	sess, gw := newTestSession(t)
	gw.seedFolder("f-side", "Side", "r1", nil)
	require.NoError(t, sess.SelectRoom("r1"))
	require.NoError(t, sess.EnterFolder("f-root"))

	require.NoError(t, sess.DeleteFolder("f-side"))
	require.NotNil(t, sess.State().FolderID)
	assert.Equal(t, "f-root", *sess.State().FolderID)
}

func TestCreateFolderUsesCurrentPosition(t *testing.T) {
	sess, gw := newTestSession(t)
	require.NoError(t, sess.SelectRoom("r1"))

	_, err := sess.CreateFolder("Legal")
	require.NoError(t, err)
	assert.Nil(t, gw.folders["folder-Legal"].Folder.ParentID)

	require.NoError(t, sess.EnterFolder("f-root"))
	_, err = sess.CreateFolder("Contracts")
	require.NoError(t, err)
	require.NotNil(t, gw.folders["folder-Contracts"].Folder.ParentID)
	assert.Equal(t, "f-root", *gw.folders["folder-Contracts"].Folder.ParentID)
}

func TestCreateFolderValidatesName(t *testing.T) {
	sess, _ := newTestSession(t)
	require.NoError(t, sess.SelectRoom("r1"))

	_, err := sess.CreateFolder("   ")
	assert.Error(t, err)
}
