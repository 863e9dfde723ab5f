package publication_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"leander-social/internal/config"
	"leander-social/internal/domain"
	"leander-social/internal/mocks"
	"leander-social/internal/service/publication"
)

type fixture struct {
	repo  *mocks.PublicationRepository
	media *mocks.MediaService
	notif *mocks.NotificationService
	svc   publication.Service
}

func newFixture() *fixture {
	f := &fixture{
		repo:  new(mocks.PublicationRepository),
		media: new(mocks.MediaService),
		notif: new(mocks.NotificationService),
	}
	f.svc = publication.NewService(f.repo, f.media, f.notif, &config.Config{MaxUploadFiles: 2}, zerolog.Nop())
	return f
}

func upload(name, mime string) domain.FileUpload {
	return domain.FileUpload{FileName: name, MimeType: mime, Size: 4, Content: strings.NewReader("data")}
}

func TestPublicationService_Create(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	input := domain.CreatePublicationInput{Title: " Hola ", Text: "mundo"}

	t.Run("Stores classified files and notifies followers", func(t *testing.T) {
		f := newFixture()
		video := upload("clip.mp4", "video/mp4")
		doc := upload("cv.pdf", "application/pdf")

		f.media.On("Upload", ctx, "publications/videos", video).Return("/uploads/publications/videos/1.mp4", nil).Once()
		f.media.On("Upload", ctx, "publications/documents", doc).Return("/uploads/publications/documents/2.pdf", nil).Once()
		f.repo.On("Create", ctx, mock.MatchedBy(func(p *domain.Publication) bool {
			return p.UserID == userID && p.Title == "Hola" && len(p.Files) == 2
		})).Return(nil).Once()
		f.notif.On("NotifyNewPublication", ctx, mock.AnythingOfType("*domain.Publication")).Return(nil).Once()

		pub, err := f.svc.Create(ctx, userID, input, []domain.FileUpload{video, doc})

		require.NoError(t, err)
		assert.Equal(t, domain.FileTypeVideo, pub.Files[0].FileType)
		assert.Equal(t, domain.FileTypeDocument, pub.Files[1].FileType)
		assert.Equal(t, "cv.pdf", pub.Files[1].OriginalName)
		assert.Equal(t, 1, pub.Files[1].Position)
		f.repo.AssertExpectations(t)
		f.media.AssertExpectations(t)
		f.notif.AssertExpectations(t)
	})

	t.Run("Too many files", func(t *testing.T) {
		f := newFixture()
		files := []domain.FileUpload{upload("a.png", "image/png"), upload("b.png", "image/png"), upload("c.png", "image/png")}

		_, err := f.svc.Create(ctx, userID, input, files)

		assert.ErrorIs(t, err, domain.ErrTooManyFiles)
		f.media.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Unsupported type uploads nothing", func(t *testing.T) {
		f := newFixture()
		files := []domain.FileUpload{upload("a.png", "image/png"), upload("setup.exe", "application/x-msdownload")}

		_, err := f.svc.Create(ctx, userID, input, files)

		assert.ErrorIs(t, err, domain.ErrUnsupportedFileType)
		f.media.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Notification failure does not fail the request", func(t *testing.T) {
		f := newFixture()
		f.repo.On("Create", ctx, mock.Anything).Return(nil).Once()
		f.notif.On("NotifyNewPublication", ctx, mock.Anything).Return(errors.New("ledger down")).Once()

		pub, err := f.svc.Create(ctx, userID, input, nil)

		assert.NoError(t, err)
		assert.NotNil(t, pub)
	})

	t.Run("Repo failure removes uploaded files", func(t *testing.T) {
		f := newFixture()
		img := upload("a.png", "image/png")
		f.media.On("Upload", ctx, "publications/images", img).Return("/uploads/publications/images/a.png", nil).Once()
		f.repo.On("Create", ctx, mock.Anything).Return(errors.New("db error")).Once()
		f.media.On("Delete", ctx, "/uploads/publications/images/a.png").Return(nil).Once()

		_, err := f.svc.Create(ctx, userID, input, []domain.FileUpload{img})

		assert.EqualError(t, err, "db error")
		f.media.AssertExpectations(t)
		f.notif.AssertNotCalled(t, "NotifyNewPublication", mock.Anything, mock.Anything)
	})
}

func TestPublicationService_Like(t *testing.T) {
	ctx := context.Background()
	author, fan := uuid.New(), uuid.New()
	pubID := uuid.New()

	t.Run("Second like does not notify again", func(t *testing.T) {
		f := newFixture()
		f.repo.On("GetByID", ctx, pubID).Return(&domain.Publication{ID: pubID, UserID: author}, nil).Once()
		f.repo.On("AddLike", ctx, mock.Anything).Return(true, nil).Once()
		f.notif.On("NotifyLike", ctx, mock.Anything, mock.MatchedBy(func(l *domain.PublicationLike) bool {
			return l.UserID == fan && l.PublicationID == pubID
		})).Return(nil).Once()

		pub, err := f.svc.Like(ctx, fan, pubID)
		require.NoError(t, err)
		assert.True(t, pub.LikedBy(fan))

		f.repo.On("GetByID", ctx, pubID).Return(&domain.Publication{ID: pubID, UserID: author, Likes: []uuid.UUID{fan}}, nil).Once()
		f.repo.On("AddLike", ctx, mock.Anything).Return(false, nil).Once()

		pub, err = f.svc.Like(ctx, fan, pubID)
		require.NoError(t, err)
		assert.Len(t, pub.Likes, 1)

		f.notif.AssertNumberOfCalls(t, "NotifyLike", 1)
	})

	t.Run("Unknown publication", func(t *testing.T) {
		f := newFixture()
		f.repo.On("GetByID", ctx, pubID).Return(nil, nil).Once()

		_, err := f.svc.Like(ctx, fan, pubID)

		assert.ErrorIs(t, err, domain.ErrPublicationNotFound)
	})
}

func TestPublicationService_Unlike(t *testing.T) {
	ctx := context.Background()
	author, fan := uuid.New(), uuid.New()
	pubID, likeID := uuid.New(), uuid.New()

	t.Run("Retracts the like notification", func(t *testing.T) {
		f := newFixture()
		f.repo.On("GetByID", ctx, pubID).Return(&domain.Publication{ID: pubID, UserID: author, Likes: []uuid.UUID{fan}}, nil).Once()
		f.repo.On("RemoveLike", ctx, pubID, fan).Return(&domain.PublicationLike{ID: likeID, PublicationID: pubID, UserID: fan}, nil).Once()
		f.notif.On("Retract", ctx, domain.NotifLike, likeID).Return(nil).Once()

		pub, err := f.svc.Unlike(ctx, fan, pubID)

		require.NoError(t, err)
		assert.False(t, pub.LikedBy(fan))
		f.notif.AssertExpectations(t)
	})

	t.Run("Not liked is a no-op", func(t *testing.T) {
		f := newFixture()
		f.repo.On("GetByID", ctx, pubID).Return(&domain.Publication{ID: pubID, UserID: author}, nil).Once()
		f.repo.On("RemoveLike", ctx, pubID, fan).Return(nil, nil).Once()

		_, err := f.svc.Unlike(ctx, fan, pubID)

		assert.NoError(t, err)
		f.notif.AssertNotCalled(t, "Retract", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestPublicationService_UpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	owner, stranger := uuid.New(), uuid.New()
	pubID := uuid.New()

	t.Run("Update by non-owner is not found", func(t *testing.T) {
		f := newFixture()
		f.repo.On("GetByID", ctx, pubID).Return(&domain.Publication{ID: pubID, UserID: owner, Title: "t"}, nil).Once()
		title := "hijacked"

		_, err := f.svc.Update(ctx, stranger, pubID, domain.UpdatePublicationInput{Title: &title})

		assert.ErrorIs(t, err, domain.ErrPublicationNotFound)
		f.repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("Update by owner", func(t *testing.T) {
		f := newFixture()
		f.repo.On("GetByID", ctx, pubID).Return(&domain.Publication{ID: pubID, UserID: owner, Title: "t", Text: "x"}, nil).Once()
		f.repo.On("Update", ctx, mock.MatchedBy(func(p *domain.Publication) bool {
			return p.Title == "nuevo" && p.Text == "x"
		})).Return(true, nil).Once()
		title := "nuevo"

		pub, err := f.svc.Update(ctx, owner, pubID, domain.UpdatePublicationInput{Title: &title})

		require.NoError(t, err)
		assert.Equal(t, "nuevo", pub.Title)
	})

	t.Run("Delete by non-owner is not found", func(t *testing.T) {
		f := newFixture()
		f.repo.On("GetByID", ctx, pubID).Return(&domain.Publication{ID: pubID, UserID: owner}, nil).Once()

		err := f.svc.Delete(ctx, stranger, pubID)

		assert.ErrorIs(t, err, domain.ErrPublicationNotFound)
		f.repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Delete removes stored files", func(t *testing.T) {
		f := newFixture()
		files := []domain.PublicationFile{{Path: "/uploads/publications/images/a.png"}}
		f.repo.On("GetByID", ctx, pubID).Return(&domain.Publication{ID: pubID, UserID: owner, Files: files}, nil).Once()
		f.repo.On("Delete", ctx, pubID, owner).Return(true, nil).Once()
		f.media.On("Delete", ctx, "/uploads/publications/images/a.png").Return(errors.New("gone")).Once()

		err := f.svc.Delete(ctx, owner, pubID)

		assert.NoError(t, err)
		f.media.AssertExpectations(t)
	})
}

func TestPublicationService_Comments(t *testing.T) {
	ctx := context.Background()
	owner, commenter, stranger := uuid.New(), uuid.New(), uuid.New()
	pubID, commentID := uuid.New(), uuid.New()
	pub := func() *domain.Publication { return &domain.Publication{ID: pubID, UserID: owner} }
	comment := func() *domain.PublicationComment {
		return &domain.PublicationComment{ID: commentID, PublicationID: pubID, UserID: commenter, Text: "hola"}
	}

	t.Run("Add notifies the author", func(t *testing.T) {
		f := newFixture()
		f.repo.On("GetByID", ctx, pubID).Return(pub(), nil).Once()
		f.repo.On("AddComment", ctx, mock.MatchedBy(func(c *domain.PublicationComment) bool {
			return c.UserID == commenter && c.Text == "hola"
		})).Return(nil).Once()
		f.notif.On("NotifyComment", ctx, mock.Anything, mock.Anything).Return(nil).Once()
		f.repo.On("GetComment", ctx, pubID, mock.Anything).Return(comment(), nil).Once()

		created, err := f.svc.AddComment(ctx, commenter, pubID, domain.CommentInput{Text: "hola"})

		require.NoError(t, err)
		assert.Equal(t, "hola", created.Text)
		f.notif.AssertExpectations(t)
	})

	t.Run("Edit by someone else is forbidden", func(t *testing.T) {
		f := newFixture()
		f.repo.On("GetComment", ctx, pubID, commentID).Return(comment(), nil).Once()

		_, err := f.svc.UpdateComment(ctx, owner, pubID, commentID, domain.CommentInput{Text: "edit"})

		assert.ErrorIs(t, err, domain.ErrForbidden)
		f.repo.AssertNotCalled(t, "UpdateComment", mock.Anything, mock.Anything)
	})

	t.Run("Edit by author", func(t *testing.T) {
		f := newFixture()
		f.repo.On("GetComment", ctx, pubID, commentID).Return(comment(), nil).Once()
		f.repo.On("UpdateComment", ctx, mock.MatchedBy(func(c *domain.PublicationComment) bool {
			return c.Text == "edit"
		})).Return(nil).Once()

		updated, err := f.svc.UpdateComment(ctx, commenter, pubID, commentID, domain.CommentInput{Text: "edit"})

		require.NoError(t, err)
		assert.Equal(t, "edit", updated.Text)
	})

	t.Run("Publication owner may delete and the notification is retracted", func(t *testing.T) {
		f := newFixture()
		f.repo.On("GetByID", ctx, pubID).Return(pub(), nil).Once()
		f.repo.On("GetComment", ctx, pubID, commentID).Return(comment(), nil).Once()
		f.repo.On("DeleteComment", ctx, pubID, commentID).Return(nil).Once()
		f.notif.On("Retract", ctx, domain.NotifComment, commentID).Return(nil).Once()

		err := f.svc.DeleteComment(ctx, owner, pubID, commentID)

		assert.NoError(t, err)
		f.notif.AssertExpectations(t)
	})

	t.Run("Stranger may not delete", func(t *testing.T) {
		f := newFixture()
		f.repo.On("GetByID", ctx, pubID).Return(pub(), nil).Once()
		f.repo.On("GetComment", ctx, pubID, commentID).Return(comment(), nil).Once()

		err := f.svc.DeleteComment(ctx, stranger, pubID, commentID)

		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("Unknown comment", func(t *testing.T) {
		f := newFixture()
		f.repo.On("GetComment", ctx, pubID, commentID).Return(nil, nil).Once()

		_, err := f.svc.UpdateComment(ctx, commenter, pubID, commentID, domain.CommentInput{Text: "x"})

		assert.ErrorIs(t, err, domain.ErrCommentNotFound)
	})
}

func TestPublicationService_List(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	params := domain.PaginationParams{Page: 0, PageSize: 0}
	expected := domain.PaginationParams{Page: 1, PageSize: 20}

	f.repo.On("List", ctx, expected).Return([]domain.Publication{{ID: uuid.New()}}, int64(1), nil).Once()

	resp, err := f.svc.List(ctx, params)

	require.NoError(t, err)
	assert.Len(t, resp.Data, 1)
	assert.Equal(t, 1, resp.TotalPages)
}
