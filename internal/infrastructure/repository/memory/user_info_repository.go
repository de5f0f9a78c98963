package memory

import (
	"context"
	"fmt"

	"github.com/riskibarqy/hr-profile/internal/domain/userinfo"
)

type UserInfoRepository struct {
	tx *txState
}

func (r *UserInfoRepository) GetByUserID(_ context.Context, userID string) (userinfo.Info, bool, error) {
	info, ok := r.tx.userInfos[userID]
	return info, ok, nil
}

func (r *UserInfoRepository) Update(_ context.Context, info userinfo.Info) error {
	if err := r.tx.checkWritable(); err != nil {
		return err
	}

	existing, ok := r.tx.userInfos[info.UserID]
	if !ok {
		return fmt.Errorf("update user info user=%s: no row", info.UserID)
	}
	existing.HaveProfExperience = info.HaveProfExperience
	existing.UpdatedAt = r.tx.now().UTC()
	r.tx.userInfos[info.UserID] = existing
	return nil
}
