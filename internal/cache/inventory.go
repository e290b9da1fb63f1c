package cache

import (
	"context"
	"fmt"
	"time"
)

// Key layout for the read-through caches. Every key written here has a
// matching Invalidate* call on the write path that mutates its source.
const (
	UserKeyPrefix     = "user:%d"
	UserSkillsPrefix  = "user:%d:skills"
	UserRatingsPrefix = "user:%d:ratings"
	AnnouncementsKey  = "announcements:active"
	SwapThreadPrefix  = "swap:%d:messages"
	PlatformStatsKey  = "admin:stats"
)

const (
	UserTTL          = 5 * time.Minute
	AnnouncementsTTL = 2 * time.Minute
	SwapThreadTTL    = 1 * time.Minute
	StatsTTL         = 30 * time.Second
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func UserSkillsKey(userID uint) string {
	return fmt.Sprintf(UserSkillsPrefix, userID)
}

func UserRatingsKey(userID uint) string {
	return fmt.Sprintf(UserRatingsPrefix, userID)
}

func SwapThreadKey(swapID uint) string {
	return fmt.Sprintf(SwapThreadPrefix, swapID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
	Invalidate(ctx, UserSkillsKey(userID))
	Invalidate(ctx, UserRatingsKey(userID))
}

func InvalidateUserSkills(ctx context.Context, userID uint) {
	Invalidate(ctx, UserSkillsKey(userID))
}

func InvalidateSwapThread(ctx context.Context, swapID uint) {
	Invalidate(ctx, SwapThreadKey(swapID))
}

func InvalidateAnnouncements(ctx context.Context) {
	Invalidate(ctx, AnnouncementsKey)
}
