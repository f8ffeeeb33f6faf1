package constants

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestRedisKeyFormats 验证Key模板渲染后符合 app:{module}:{entity}:{unique_id} 规范
func TestRedisKeyFormats(t *testing.T) {
	quotaKey := fmt.Sprintf(KeyRankQuota, "user-42", "20260831")
	assert.Equal(t, "app:match:quota:user-42:20260831", quotaKey)

	cacheKey := fmt.Sprintf(KeyRankCache, CandidateKindCompany, "profile-1", "d41d8cd98f00b204e9800998ecf8427e")
	assert.Equal(t, "app:match:cache:company:profile-1:d41d8cd98f00b204e9800998ecf8427e", cacheKey)

	md5Key := fmt.Sprintf(KeyTextMD5ToProfileID, "d41d8cd98f00b204e9800998ecf8427e")
	assert.Equal(t, "app:profile:md5_to_id:d41d8cd98f00b204e9800998ecf8427e", md5Key)
}
