package service

import (
	"context"

	"skillswap/internal/models"
	"skillswap/internal/repository"
)

type userRepoStub struct {
	createFn        func(context.Context, *models.User) error
	getByIDFn       func(context.Context, uint) (*models.User, error)
	getByEmailFn    func(context.Context, string) (*models.User, error)
	getByUsernameFn func(context.Context, string) (*models.User, error)
	updateFn        func(context.Context, *models.User) error
	updateFieldsFn  func(context.Context, uint, map[string]interface{}) error
	browseFn        func(context.Context, repository.UserBrowseFilter) ([]models.User, int64, error)
	listAllFn       func(context.Context, string, int, int) ([]models.User, int64, error)
	setBannedFn     func(context.Context, uint, bool) error
	setAdminFn      func(context.Context, uint, bool) error
	countFn         func(context.Context) (int64, error)
}

func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) UpdateFields(ctx context.Context, userID uint, fields map[string]interface{}) error {
	return s.updateFieldsFn(ctx, userID, fields)
}
func (s *userRepoStub) Browse(ctx context.Context, filter repository.UserBrowseFilter) ([]models.User, int64, error) {
	return s.browseFn(ctx, filter)
}
func (s *userRepoStub) ListAll(ctx context.Context, query string, page, pageSize int) ([]models.User, int64, error) {
	return s.listAllFn(ctx, query, page, pageSize)
}
func (s *userRepoStub) SetBanned(ctx context.Context, userID uint, banned bool) error {
	return s.setBannedFn(ctx, userID, banned)
}
func (s *userRepoStub) SetAdmin(ctx context.Context, userID uint, admin bool) error {
	return s.setAdminFn(ctx, userID, admin)
}
func (s *userRepoStub) Count(ctx context.Context) (int64, error) {
	return s.countFn(ctx)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		createFn:        func(context.Context, *models.User) error { return nil },
		getByIDFn:       func(ctx context.Context, id uint) (*models.User, error) { return &models.User{ID: id, IsPublic: true}, nil },
		getByEmailFn:    func(context.Context, string) (*models.User, error) { return nil, nil },
		getByUsernameFn: func(context.Context, string) (*models.User, error) { return nil, nil },
		updateFn:        func(context.Context, *models.User) error { return nil },
		updateFieldsFn:  func(context.Context, uint, map[string]interface{}) error { return nil },
		browseFn: func(context.Context, repository.UserBrowseFilter) ([]models.User, int64, error) {
			return nil, 0, nil
		},
		listAllFn:   func(context.Context, string, int, int) ([]models.User, int64, error) { return nil, 0, nil },
		setBannedFn: func(context.Context, uint, bool) error { return nil },
		setAdminFn:  func(context.Context, uint, bool) error { return nil },
		countFn:     func(context.Context) (int64, error) { return 0, nil },
	}
}

type skillRepoStub struct {
	createFn              func(context.Context, *models.Skill) error
	getByIDFn             func(context.Context, uint) (*models.Skill, error)
	getByUserFn           func(context.Context, uint, bool) ([]models.Skill, error)
	updateFn              func(context.Context, *models.Skill) error
	deleteFn              func(context.Context, uint) error
	hardDeleteFn          func(context.Context, uint) error
	browseFn              func(context.Context, repository.SkillBrowseFilter) ([]models.Skill, int64, error)
	listAllFn             func(context.Context, int, int) ([]models.Skill, int64, error)
	listPendingApprovalFn func(context.Context, int, int) ([]models.Skill, int64, error)
	setApprovedFn         func(context.Context, uint, bool) error
	countFn               func(context.Context) (int64, error)
	countByCategoryFn     func(context.Context) (map[string]int64, error)
}

func (s *skillRepoStub) Create(ctx context.Context, skill *models.Skill) error {
	return s.createFn(ctx, skill)
}
func (s *skillRepoStub) GetByID(ctx context.Context, id uint) (*models.Skill, error) {
	return s.getByIDFn(ctx, id)
}
func (s *skillRepoStub) GetByUser(ctx context.Context, userID uint, approvedOnly bool) ([]models.Skill, error) {
	return s.getByUserFn(ctx, userID, approvedOnly)
}
func (s *skillRepoStub) Update(ctx context.Context, skill *models.Skill) error {
	return s.updateFn(ctx, skill)
}
func (s *skillRepoStub) Delete(ctx context.Context, skillID uint) error {
	return s.deleteFn(ctx, skillID)
}
func (s *skillRepoStub) HardDelete(ctx context.Context, skillID uint) error {
	return s.hardDeleteFn(ctx, skillID)
}
func (s *skillRepoStub) Browse(ctx context.Context, filter repository.SkillBrowseFilter) ([]models.Skill, int64, error) {
	return s.browseFn(ctx, filter)
}
func (s *skillRepoStub) ListAll(ctx context.Context, page, pageSize int) ([]models.Skill, int64, error) {
	return s.listAllFn(ctx, page, pageSize)
}
func (s *skillRepoStub) ListPendingApproval(ctx context.Context, page, pageSize int) ([]models.Skill, int64, error) {
	return s.listPendingApprovalFn(ctx, page, pageSize)
}
func (s *skillRepoStub) SetApproved(ctx context.Context, skillID uint, approved bool) error {
	return s.setApprovedFn(ctx, skillID, approved)
}
func (s *skillRepoStub) Count(ctx context.Context) (int64, error) {
	return s.countFn(ctx)
}
func (s *skillRepoStub) CountByCategory(ctx context.Context) (map[string]int64, error) {
	return s.countByCategoryFn(ctx)
}

func noopSkillRepo() *skillRepoStub {
	return &skillRepoStub{
		createFn: func(context.Context, *models.Skill) error { return nil },
		getByIDFn: func(ctx context.Context, id uint) (*models.Skill, error) {
			return &models.Skill{ID: id, Type: models.SkillTypeOffered, Approved: true}, nil
		},
		getByUserFn:           func(context.Context, uint, bool) ([]models.Skill, error) { return nil, nil },
		updateFn:              func(context.Context, *models.Skill) error { return nil },
		deleteFn:     func(context.Context, uint) error { return nil },
		hardDeleteFn: func(context.Context, uint) error { return nil },
		browseFn: func(context.Context, repository.SkillBrowseFilter) ([]models.Skill, int64, error) {
			return nil, 0, nil
		},
		listAllFn:             func(context.Context, int, int) ([]models.Skill, int64, error) { return nil, 0, nil },
		listPendingApprovalFn: func(context.Context, int, int) ([]models.Skill, int64, error) { return nil, 0, nil },
		setApprovedFn:         func(context.Context, uint, bool) error { return nil },
		countFn:               func(context.Context) (int64, error) { return 0, nil },
		countByCategoryFn:     func(context.Context) (map[string]int64, error) { return nil, nil },
	}
}

type swapRepoStub struct {
	createFn              func(context.Context, *models.SwapRequest) error
	getByIDFn             func(context.Context, uint) (*models.SwapRequest, error)
	hasPendingDuplicateFn func(context.Context, uint, uint, uint, uint) (bool, error)
	getPendingReceivedFn  func(context.Context, uint) ([]models.SwapRequest, error)
	getSentFn             func(context.Context, uint) ([]models.SwapRequest, error)
	listForUserFn         func(context.Context, uint, models.SwapStatus, string, int, int) ([]models.SwapRequest, int64, error)
	transitionStatusFn    func(context.Context, uint, models.SwapStatus, models.SwapStatus, map[string]interface{}) error
	completeFn            func(context.Context, uint) error
	listAllFn             func(context.Context, models.SwapStatus, int, int) ([]models.SwapRequest, int64, error)
	countByStatusFn       func(context.Context) (map[models.SwapStatus]int64, error)
}

func (s *swapRepoStub) Create(ctx context.Context, swap *models.SwapRequest) error {
	return s.createFn(ctx, swap)
}
func (s *swapRepoStub) GetByID(ctx context.Context, id uint) (*models.SwapRequest, error) {
	return s.getByIDFn(ctx, id)
}
func (s *swapRepoStub) HasPendingDuplicate(ctx context.Context, requesterID, providerID, offeredSkillID, wantedSkillID uint) (bool, error) {
	return s.hasPendingDuplicateFn(ctx, requesterID, providerID, offeredSkillID, wantedSkillID)
}
func (s *swapRepoStub) GetPendingReceived(ctx context.Context, userID uint) ([]models.SwapRequest, error) {
	return s.getPendingReceivedFn(ctx, userID)
}
func (s *swapRepoStub) GetSent(ctx context.Context, userID uint) ([]models.SwapRequest, error) {
	return s.getSentFn(ctx, userID)
}
func (s *swapRepoStub) ListForUser(ctx context.Context, userID uint, status models.SwapStatus, role string, page, pageSize int) ([]models.SwapRequest, int64, error) {
	return s.listForUserFn(ctx, userID, status, role, page, pageSize)
}
func (s *swapRepoStub) TransitionStatus(ctx context.Context, swapID uint, from, to models.SwapStatus, extra map[string]interface{}) error {
	return s.transitionStatusFn(ctx, swapID, from, to, extra)
}
func (s *swapRepoStub) Complete(ctx context.Context, swapID uint) error {
	return s.completeFn(ctx, swapID)
}
func (s *swapRepoStub) ListAll(ctx context.Context, status models.SwapStatus, page, pageSize int) ([]models.SwapRequest, int64, error) {
	return s.listAllFn(ctx, status, page, pageSize)
}
func (s *swapRepoStub) CountByStatus(ctx context.Context) (map[models.SwapStatus]int64, error) {
	return s.countByStatusFn(ctx)
}

func noopSwapRepo() *swapRepoStub {
	return &swapRepoStub{
		createFn: func(context.Context, *models.SwapRequest) error { return nil },
		getByIDFn: func(ctx context.Context, id uint) (*models.SwapRequest, error) {
			return &models.SwapRequest{ID: id, Status: models.SwapStatusPending}, nil
		},
		hasPendingDuplicateFn: func(context.Context, uint, uint, uint, uint) (bool, error) { return false, nil },
		getPendingReceivedFn:  func(context.Context, uint) ([]models.SwapRequest, error) { return nil, nil },
		getSentFn:             func(context.Context, uint) ([]models.SwapRequest, error) { return nil, nil },
		listForUserFn: func(context.Context, uint, models.SwapStatus, string, int, int) ([]models.SwapRequest, int64, error) {
			return nil, 0, nil
		},
		transitionStatusFn: func(context.Context, uint, models.SwapStatus, models.SwapStatus, map[string]interface{}) error {
			return nil
		},
		completeFn: func(context.Context, uint) error { return nil },
		listAllFn: func(context.Context, models.SwapStatus, int, int) ([]models.SwapRequest, int64, error) {
			return nil, 0, nil
		},
		countByStatusFn: func(context.Context) (map[models.SwapStatus]int64, error) { return nil, nil },
	}
}

type messageRepoStub struct {
	createFn      func(context.Context, *models.SwapMessage) error
	listBySwapFn  func(context.Context, uint, int, int) ([]models.SwapMessage, int64, error)
	markReadFn    func(context.Context, uint, uint) (int64, error)
	countUnreadFn func(context.Context, uint, uint) (int64, error)
}

func (s *messageRepoStub) Create(ctx context.Context, message *models.SwapMessage) error {
	return s.createFn(ctx, message)
}
func (s *messageRepoStub) ListBySwap(ctx context.Context, swapID uint, page, pageSize int) ([]models.SwapMessage, int64, error) {
	return s.listBySwapFn(ctx, swapID, page, pageSize)
}
func (s *messageRepoStub) MarkRead(ctx context.Context, swapID, readerID uint) (int64, error) {
	return s.markReadFn(ctx, swapID, readerID)
}
func (s *messageRepoStub) CountUnread(ctx context.Context, swapID, readerID uint) (int64, error) {
	return s.countUnreadFn(ctx, swapID, readerID)
}

func noopMessageRepo() *messageRepoStub {
	return &messageRepoStub{
		createFn: func(context.Context, *models.SwapMessage) error { return nil },
		listBySwapFn: func(context.Context, uint, int, int) ([]models.SwapMessage, int64, error) {
			return nil, 0, nil
		},
		markReadFn:    func(context.Context, uint, uint) (int64, error) { return 0, nil },
		countUnreadFn: func(context.Context, uint, uint) (int64, error) { return 0, nil },
	}
}

type ratingRepoStub struct {
	createAndRecomputeFn func(context.Context, *models.Rating) error
	getBySwapAndRaterFn  func(context.Context, uint, uint) (*models.Rating, error)
	listBySwapFn         func(context.Context, uint) ([]models.Rating, error)
	listForUserFn        func(context.Context, uint, int, int) ([]models.Rating, int64, error)
	countFn              func(context.Context) (int64, error)
	globalAverageFn      func(context.Context) (float64, error)
}

func (s *ratingRepoStub) CreateAndRecompute(ctx context.Context, rating *models.Rating) error {
	return s.createAndRecomputeFn(ctx, rating)
}
func (s *ratingRepoStub) GetBySwapAndRater(ctx context.Context, swapID, raterID uint) (*models.Rating, error) {
	return s.getBySwapAndRaterFn(ctx, swapID, raterID)
}
func (s *ratingRepoStub) ListBySwap(ctx context.Context, swapID uint) ([]models.Rating, error) {
	return s.listBySwapFn(ctx, swapID)
}
func (s *ratingRepoStub) ListForUser(ctx context.Context, ratedID uint, page, pageSize int) ([]models.Rating, int64, error) {
	return s.listForUserFn(ctx, ratedID, page, pageSize)
}
func (s *ratingRepoStub) Count(ctx context.Context) (int64, error) {
	return s.countFn(ctx)
}
func (s *ratingRepoStub) GlobalAverage(ctx context.Context) (float64, error) {
	return s.globalAverageFn(ctx)
}

func noopRatingRepo() *ratingRepoStub {
	return &ratingRepoStub{
		createAndRecomputeFn: func(context.Context, *models.Rating) error { return nil },
		getBySwapAndRaterFn:  func(context.Context, uint, uint) (*models.Rating, error) { return nil, nil },
		listBySwapFn:         func(context.Context, uint) ([]models.Rating, error) { return nil, nil },
		listForUserFn:        func(context.Context, uint, int, int) ([]models.Rating, int64, error) { return nil, 0, nil },
		countFn:              func(context.Context) (int64, error) { return 0, nil },
		globalAverageFn:      func(context.Context) (float64, error) { return 0, nil },
	}
}

type announcementRepoStub struct {
	createFn     func(context.Context, *models.Announcement) error
	getByIDFn    func(context.Context, uint) (*models.Announcement, error)
	listActiveFn func(context.Context) ([]models.Announcement, error)
	listAllFn    func(context.Context, int, int) ([]models.Announcement, int64, error)
	setActiveFn  func(context.Context, uint, bool) error
}

func (s *announcementRepoStub) Create(ctx context.Context, announcement *models.Announcement) error {
	return s.createFn(ctx, announcement)
}
func (s *announcementRepoStub) GetByID(ctx context.Context, id uint) (*models.Announcement, error) {
	return s.getByIDFn(ctx, id)
}
func (s *announcementRepoStub) ListActive(ctx context.Context) ([]models.Announcement, error) {
	return s.listActiveFn(ctx)
}
func (s *announcementRepoStub) ListAll(ctx context.Context, page, pageSize int) ([]models.Announcement, int64, error) {
	return s.listAllFn(ctx, page, pageSize)
}
func (s *announcementRepoStub) SetActive(ctx context.Context, id uint, active bool) error {
	return s.setActiveFn(ctx, id, active)
}

func noopAnnouncementRepo() *announcementRepoStub {
	return &announcementRepoStub{
		createFn:     func(context.Context, *models.Announcement) error { return nil },
		getByIDFn:    func(ctx context.Context, id uint) (*models.Announcement, error) { return &models.Announcement{ID: id}, nil },
		listActiveFn: func(context.Context) ([]models.Announcement, error) { return nil, nil },
		listAllFn:    func(context.Context, int, int) ([]models.Announcement, int64, error) { return nil, 0, nil },
		setActiveFn:  func(context.Context, uint, bool) error { return nil },
	}
}
