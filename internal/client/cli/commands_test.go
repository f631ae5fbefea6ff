package cli

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/arefyev/sealmsg/internal/client/db"
	"github.com/arefyev/sealmsg/internal/client/models"
	"github.com/arefyev/sealmsg/internal/common"
	"github.com/arefyev/sealmsg/internal/logging"
)

// ------------ helpers ------------

func silencePrintln(t *testing.T) {
	t.Helper()
	orig := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = orig })
}

func readerFromLines(lines ...string) *bufio.Reader {
	if len(lines) == 0 || lines[len(lines)-1] != "" {
		lines = append(lines, "")
	}
	return bufio.NewReader(strings.NewReader(strings.Join(lines, "\n")))
}

func setupCLIRepos(t *testing.T) *db.Repositories {
	t.Helper()
	repos, err := db.InitDatabase(context.Background(), "file:cliapp?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = repos.DB.Close() })
	return repos
}

type fakeMessageSvc struct {
	sent       []*models.Message
	sendErr    error
	prepared   *models.Message
	prepareErr error
	rawSeen    models.RawAsset
	cancelID   string
	cancelErr  error
	deletedID  string
}

func (f *fakeMessageSvc) Send(ctx context.Context, m *models.Message) (*models.Message, error) {
	f.sent = append(f.sent, m)
	if f.sendErr != nil {
		return m, f.sendErr
	}
	out := *m
	out.Status = models.DeliverySent
	out.RemoteTime = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return &out, nil
}

func (f *fakeMessageSvc) PrepareAttachment(ctx context.Context, conversationID string, raw models.RawAsset, public bool, retention string, caption string) (*models.Message, error) {
	f.rawSeen = raw
	if f.prepareErr != nil {
		return nil, f.prepareErr
	}
	f.prepared = &models.Message{
		ID:             "m-prep",
		ConversationID: conversationID,
		Type:           models.MessageAsset,
		Body:           caption,
		UploadID:       "u-prep",
		Outgoing:       true,
	}
	return f.prepared, nil
}

func (f *fakeMessageSvc) CancelUpload(ctx context.Context, uploadID string) error {
	f.cancelID = uploadID
	return f.cancelErr
}

func (f *fakeMessageSvc) DeleteMessage(ctx context.Context, id string) error {
	f.deletedID = id
	return nil
}

type fakeAssetSvc struct {
	content []byte
	err     error
	loaded  *models.Asset
}

func (f *fakeAssetSvc) LoadContent(ctx context.Context, a *models.Asset) (io.ReadCloser, error) {
	f.loaded = a
	if f.err != nil {
		return nil, f.err
	}
	return io.NopCloser(bytes.NewReader(f.content)), nil
}

func newTestApp(repos *db.Repositories, svc *fakeMessageSvc, assets *fakeAssetSvc, r *bufio.Reader) *App {
	return &App{
		repos:    repos,
		assets:   assets,
		messages: svc,
		reader:   r,
		log:      logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	}
}

// ------------ tests ------------

func TestOpen_CreatesConversation(t *testing.T) {
	silencePrintln(t)
	ctx := context.Background()
	repos := setupCLIRepos(t)
	a := newTestApp(repos, &fakeMessageSvc{}, &fakeAssetSvc{}, readerFromLines())

	require.NoError(t, a.Open(ctx, []string{"conv-1"}))
	require.Equal(t, "conv-1", a.currentConv)
	require.True(t, a.hasConversation())

	conv, err := repos.Conversations.GetByID(ctx, "conv-1")
	require.NoError(t, err)
	require.Equal(t, "conv-1", conv.ID)

	// opening again keeps the existing record
	require.NoError(t, a.Open(ctx, []string{"conv-1"}))
}

func TestOpen_Usage(t *testing.T) {
	silencePrintln(t)
	a := newTestApp(nil, &fakeMessageSvc{}, &fakeAssetSvc{}, readerFromLines())
	err := a.Open(context.Background(), nil)
	require.ErrorIs(t, err, common.ErrValidation)
}

func TestSendText_BuildsMessage(t *testing.T) {
	silencePrintln(t)
	svc := &fakeMessageSvc{}
	a := newTestApp(setupCLIRepos(t), svc, &fakeAssetSvc{}, readerFromLines(
		"hello there", // body
		"",            // not an edit
	))
	a.currentConv = "conv-1"

	require.NoError(t, a.SendText(context.Background()))
	require.Len(t, svc.sent, 1)

	m := svc.sent[0]
	require.NotEmpty(t, m.ID)
	require.Equal(t, "conv-1", m.ConversationID)
	require.Equal(t, models.MessageText, m.Type)
	require.Equal(t, "hello there", m.Body)
	require.True(t, m.Outgoing)
	require.Empty(t, m.EditOf)
}

func TestSendText_EditLooksUpOriginal(t *testing.T) {
	silencePrintln(t)
	ctx := context.Background()
	repos := setupCLIRepos(t)
	origTime := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, repos.Messages.Save(ctx, &models.Message{
		ID:             "orig-1",
		ConversationID: "conv-1",
		Type:           models.MessageText,
		Body:           "first",
		RemoteTime:     origTime,
		Status:         models.DeliverySent,
	}))

	svc := &fakeMessageSvc{}
	a := newTestApp(repos, svc, &fakeAssetSvc{}, readerFromLines("second", "orig-1"))
	a.currentConv = "conv-1"

	require.NoError(t, a.SendText(ctx))
	require.Len(t, svc.sent, 1)
	require.Equal(t, "orig-1", svc.sent[0].EditOf)
	require.Equal(t, origTime, svc.sent[0].EditTime)
}

func TestRequireConversation(t *testing.T) {
	silencePrintln(t)
	a := newTestApp(nil, &fakeMessageSvc{}, &fakeAssetSvc{}, readerFromLines())
	require.ErrorIs(t, a.SendText(context.Background()), errNoConversation)
	require.ErrorIs(t, a.Knock(context.Background()), errNoConversation)
}

func TestSendLocation_Ephemeral(t *testing.T) {
	silencePrintln(t)
	svc := &fakeMessageSvc{}
	a := newTestApp(nil, svc, &fakeAssetSvc{}, readerFromLines(
		"12.5",   // latitude
		"-7.25",  // longitude
		"Harbor", // name
		"30",     // expiry seconds
	))
	a.currentConv = "conv-1"

	require.NoError(t, a.SendLocation(context.Background()))
	require.Len(t, svc.sent, 1)

	m := svc.sent[0]
	require.Equal(t, models.MessageLocation, m.Type)
	require.NotNil(t, m.Location)
	require.InDelta(t, 12.5, m.Location.Latitude, 1e-9)
	require.InDelta(t, -7.25, m.Location.Longitude, 1e-9)
	require.Equal(t, "Harbor", m.Location.Name)
	require.True(t, m.Ephemeral)
	require.Equal(t, int64(30000), m.ExpireMillis)
}

func TestSendLocation_BadNumber(t *testing.T) {
	silencePrintln(t)
	svc := &fakeMessageSvc{}
	a := newTestApp(nil, svc, &fakeAssetSvc{}, readerFromLines("north"))
	a.currentConv = "conv-1"

	require.ErrorIs(t, a.SendLocation(context.Background()), common.ErrValidation)
	require.Empty(t, svc.sent)
}

func TestAttach_PreparesAndSends(t *testing.T) {
	silencePrintln(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "report.txt")
	require.NoError(t, os.WriteFile(path, []byte("attachment body"), 0o600))

	svc := &fakeMessageSvc{}
	a := newTestApp(nil, svc, &fakeAssetSvc{}, readerFromLines(
		path,
		"quarterly report", // caption
	))
	a.currentConv = "conv-1"

	require.NoError(t, a.Attach(context.Background()))
	require.Equal(t, path, svc.rawSeen.Path)
	require.Equal(t, int64(len("attachment body")), svc.rawSeen.Size)
	require.True(t, strings.HasPrefix(svc.rawSeen.MimeType, "text/plain"))

	require.Len(t, svc.sent, 1)
	require.Equal(t, svc.prepared, svc.sent[0])
}

func TestAttach_MissingFile(t *testing.T) {
	silencePrintln(t)
	svc := &fakeMessageSvc{}
	a := newTestApp(nil, svc, &fakeAssetSvc{}, readerFromLines(
		filepath.Join(t.TempDir(), "nope.bin"),
	))
	a.currentConv = "conv-1"

	require.Error(t, a.Attach(context.Background()))
	require.Empty(t, svc.sent)
}

func TestCancelUpload_PassesID(t *testing.T) {
	silencePrintln(t)
	svc := &fakeMessageSvc{}
	a := newTestApp(nil, svc, &fakeAssetSvc{}, readerFromLines())

	require.NoError(t, a.CancelUpload(context.Background(), []string{"u-1"}))
	require.Equal(t, "u-1", svc.cancelID)

	svc.cancelErr = errors.New("too late")
	require.Error(t, a.CancelUpload(context.Background(), []string{"u-2"}))
}

func TestDelete_PassesID(t *testing.T) {
	silencePrintln(t)
	svc := &fakeMessageSvc{}
	a := newTestApp(nil, svc, &fakeAssetSvc{}, readerFromLines())

	require.NoError(t, a.Delete(context.Background(), []string{"m-1"}))
	require.Equal(t, "m-1", svc.deletedID)

	require.ErrorIs(t, a.Delete(context.Background(), nil), common.ErrValidation)
}

func TestSaveAsset_WritesContent(t *testing.T) {
	silencePrintln(t)
	ctx := context.Background()
	repos := setupCLIRepos(t)
	require.NoError(t, repos.Assets.Save(ctx, &models.Asset{
		ID:       "a-1",
		Digest:   []byte{1, 2, 3},
		Secret:   []byte{4, 5, 6},
		MimeType: "image/png",
		Size:     3,
	}))

	assets := &fakeAssetSvc{content: []byte("decrypted bytes")}
	a := newTestApp(repos, &fakeMessageSvc{}, assets, readerFromLines())

	dest := filepath.Join(t.TempDir(), "out.png")
	require.NoError(t, a.SaveAsset(ctx, []string{"a-1", dest}))

	written, err := os.ReadFile(dest)
	require.NoError(t, err)
	require.Equal(t, "decrypted bytes", string(written))
	require.Equal(t, "a-1", assets.loaded.ID)
}

func TestSaveAsset_UnknownAsset(t *testing.T) {
	silencePrintln(t)
	repos := setupCLIRepos(t)
	a := newTestApp(repos, &fakeMessageSvc{}, &fakeAssetSvc{}, readerFromLines())

	err := a.SaveAsset(context.Background(), []string{"ghost", filepath.Join(t.TempDir(), "x")})
	require.ErrorIs(t, err, common.ErrNotFound)
}
