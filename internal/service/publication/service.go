package publication

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"leander-social/internal/config"
	"leander-social/internal/domain"
	"leander-social/internal/repository"
	"leander-social/internal/service/media"
	"leander-social/internal/service/notification"
)

type Service interface {
	Create(ctx context.Context, userID uuid.UUID, input domain.CreatePublicationInput, files []domain.FileUpload) (*domain.Publication, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Publication, error)
	List(ctx context.Context, params domain.PaginationParams) (domain.PaginatedResponse[domain.Publication], error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Publication, error)
	Update(ctx context.Context, userID, id uuid.UUID, input domain.UpdatePublicationInput) (*domain.Publication, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error

	Like(ctx context.Context, userID, id uuid.UUID) (*domain.Publication, error)
	Unlike(ctx context.Context, userID, id uuid.UUID) (*domain.Publication, error)

	AddComment(ctx context.Context, userID, id uuid.UUID, input domain.CommentInput) (*domain.PublicationComment, error)
	UpdateComment(ctx context.Context, userID, id, commentID uuid.UUID, input domain.CommentInput) (*domain.PublicationComment, error)
	DeleteComment(ctx context.Context, userID, id, commentID uuid.UUID) error
}

type service struct {
	pubRepo      repository.PublicationRepository
	mediaService media.Service
	notifSvc     notification.Service
	maxFiles     int
	logger       zerolog.Logger
}

func NewService(
	pubRepo repository.PublicationRepository,
	mediaService media.Service,
	notifSvc notification.Service,
	cfg *config.Config,
	logger zerolog.Logger,
) Service {
	return &service{
		pubRepo:      pubRepo,
		mediaService: mediaService,
		notifSvc:     notifSvc,
		maxFiles:     cfg.MaxUploadFiles,
		logger:       logger.With().Str("component", "publication").Logger(),
	}
}

func (s *service) Create(ctx context.Context, userID uuid.UUID, input domain.CreatePublicationInput, files []domain.FileUpload) (*domain.Publication, error) {
	if s.maxFiles > 0 && len(files) > s.maxFiles {
		return nil, domain.ErrTooManyFiles
	}

	type classified struct {
		upload   domain.FileUpload
		fileType domain.FileType
		dir      string
	}
	accepted := make([]classified, 0, len(files))
	for _, f := range files {
		fileType, dir, ok := media.ClassifyPublicationFile(f.MimeType)
		if !ok {
			return nil, domain.ErrUnsupportedFileType
		}
		accepted = append(accepted, classified{upload: f, fileType: fileType, dir: dir})
	}

	pub := &domain.Publication{
		ID:     uuid.New(),
		UserID: userID,
		Title:  strings.TrimSpace(input.Title),
		Text:   input.Text,
	}

	for i, f := range accepted {
		path, err := s.mediaService.Upload(ctx, f.dir, f.upload)
		if err != nil {
			s.removeFiles(ctx, pub.Files)
			return nil, err
		}
		pub.Files = append(pub.Files, domain.PublicationFile{
			ID:            uuid.New(),
			PublicationID: pub.ID,
			Position:      i,
			Path:          path,
			OriginalName:  f.upload.FileName,
			MimeType:      f.upload.MimeType,
			FileType:      f.fileType,
		})
	}

	if err := s.pubRepo.Create(ctx, pub); err != nil {
		s.removeFiles(ctx, pub.Files)
		return nil, err
	}

	if err := s.notifSvc.NotifyNewPublication(ctx, pub); err != nil {
		s.logger.Error().Err(err).Str("publication_id", pub.ID.String()).Msg("failed to notify followers")
	}

	return pub, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*domain.Publication, error) {
	pub, err := s.pubRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if pub == nil {
		return nil, domain.ErrPublicationNotFound
	}
	return pub, nil
}

func (s *service) List(ctx context.Context, params domain.PaginationParams) (domain.PaginatedResponse[domain.Publication], error) {
	params.Validate()
	pubs, total, err := s.pubRepo.List(ctx, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Publication]{}, err
	}

	return domain.NewPaginatedResponse(pubs, params.Page, params.PageSize, total), nil
}

func (s *service) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Publication, error) {
	pubs, err := s.pubRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if pubs == nil {
		pubs = []domain.Publication{}
	}
	return pubs, nil
}

func (s *service) Update(ctx context.Context, userID, id uuid.UUID, input domain.UpdatePublicationInput) (*domain.Publication, error) {
	pub, err := s.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		pub.Title = strings.TrimSpace(*input.Title)
	}
	if input.Text != nil {
		pub.Text = *input.Text
	}

	updated, err := s.pubRepo.Update(ctx, pub)
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, domain.ErrPublicationNotFound
	}
	return pub, nil
}

func (s *service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	pub, err := s.owned(ctx, userID, id)
	if err != nil {
		return err
	}

	deleted, err := s.pubRepo.Delete(ctx, id, userID)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.ErrPublicationNotFound
	}

	s.removeFiles(ctx, pub.Files)
	return nil
}

func (s *service) Like(ctx context.Context, userID, id uuid.UUID) (*domain.Publication, error) {
	pub, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	like := &domain.PublicationLike{ID: uuid.New(), PublicationID: id, UserID: userID}
	added, err := s.pubRepo.AddLike(ctx, like)
	if err != nil {
		return nil, err
	}
	if !added {
		return pub, nil
	}

	pub.Likes = append(pub.Likes, userID)
	if err := s.notifSvc.NotifyLike(ctx, pub, like); err != nil {
		s.logger.Error().Err(err).Str("publication_id", id.String()).Msg("failed to notify like")
	}
	return pub, nil
}

func (s *service) Unlike(ctx context.Context, userID, id uuid.UUID) (*domain.Publication, error) {
	pub, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	removed, err := s.pubRepo.RemoveLike(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if removed == nil {
		return pub, nil
	}

	likes := pub.Likes[:0]
	for _, liker := range pub.Likes {
		if liker != userID {
			likes = append(likes, liker)
		}
	}
	pub.Likes = likes

	if err := s.notifSvc.Retract(ctx, domain.NotifLike, removed.ID); err != nil {
		s.logger.Error().Err(err).Str("like_id", removed.ID.String()).Msg("failed to retract like notification")
	}
	return pub, nil
}

func (s *service) AddComment(ctx context.Context, userID, id uuid.UUID, input domain.CommentInput) (*domain.PublicationComment, error) {
	pub, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	comment := &domain.PublicationComment{
		ID:            uuid.New(),
		PublicationID: id,
		UserID:        userID,
		Text:          input.Text,
	}
	if err := s.pubRepo.AddComment(ctx, comment); err != nil {
		return nil, err
	}

	if err := s.notifSvc.NotifyComment(ctx, pub, comment); err != nil {
		s.logger.Error().Err(err).Str("publication_id", id.String()).Msg("failed to notify comment")
	}

	if stored, err := s.pubRepo.GetComment(ctx, id, comment.ID); err == nil && stored != nil {
		return stored, nil
	}
	return comment, nil
}

func (s *service) UpdateComment(ctx context.Context, userID, id, commentID uuid.UUID, input domain.CommentInput) (*domain.PublicationComment, error) {
	comment, err := s.comment(ctx, id, commentID)
	if err != nil {
		return nil, err
	}
	if comment.UserID != userID {
		return nil, domain.ErrForbidden
	}

	comment.Text = input.Text
	if err := s.pubRepo.UpdateComment(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// DeleteComment is allowed for the comment author and the publication owner.
func (s *service) DeleteComment(ctx context.Context, userID, id, commentID uuid.UUID) error {
	pub, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	comment, err := s.comment(ctx, id, commentID)
	if err != nil {
		return err
	}
	if comment.UserID != userID && pub.UserID != userID {
		return domain.ErrForbidden
	}

	if err := s.pubRepo.DeleteComment(ctx, id, commentID); err != nil {
		return err
	}

	if err := s.notifSvc.Retract(ctx, domain.NotifComment, commentID); err != nil {
		s.logger.Error().Err(err).Str("comment_id", commentID.String()).Msg("failed to retract comment notification")
	}
	return nil
}

// owned hides publications of other users behind a not-found error.
func (s *service) owned(ctx context.Context, userID, id uuid.UUID) (*domain.Publication, error) {
	pub, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if pub.UserID != userID {
		return nil, domain.ErrPublicationNotFound
	}
	return pub, nil
}

func (s *service) comment(ctx context.Context, id, commentID uuid.UUID) (*domain.PublicationComment, error) {
	comment, err := s.pubRepo.GetComment(ctx, id, commentID)
	if err != nil {
		return nil, err
	}
	if comment == nil {
		return nil, domain.ErrCommentNotFound
	}
	return comment, nil
}

func (s *service) removeFiles(ctx context.Context, files []domain.PublicationFile) {
	for _, f := range files {
		if err := s.mediaService.Delete(ctx, f.Path); err != nil {
			s.logger.Warn().Err(err).Str("path", f.Path).Msg("failed to remove publication file")
		}
	}
}
