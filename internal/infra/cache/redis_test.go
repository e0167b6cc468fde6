package cache_test

import (
	"context"
	"errors"
	"time"

	"ground-control/internal/infra/cache"
	mockcache "ground-control/test/unit/doubles/infra/cache"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"github.com/redis/go-redis/v9"
	"go.uber.org/mock/gomock"
)

var _ = ginkgo.Describe("RedisCache", func() {
	var (
		redisCache      *cache.RedisCache
		mockCacheClient *mockcache.MockCacheClient
		ctrl            *gomock.Controller
		ctx             context.Context
	)

	ginkgo.BeforeEach(func() {
		ctrl = gomock.NewController(ginkgo.GinkgoT())
		mockCacheClient = mockcache.NewMockCacheClient(ctrl)
		redisCache = cache.NewRedisCacheWithClient(mockCacheClient, nil)
		ctx = context.Background()
	})

	ginkgo.AfterEach(func() {
		ctrl.Finish()
	})

	ginkgo.It("stores values as JSON and decodes them on read", func() {
		mockCacheClient.EXPECT().
			Set(gomock.Any(), "snapshot", []byte(`"payload"`), time.Duration(0)).
			Return(redis.NewStatusCmd(ctx, "OK"))

		cmd := redis.NewStringCmd(ctx, "get", "snapshot")
		cmd.SetVal(`"payload"`)
		mockCacheClient.EXPECT().Get(gomock.Any(), "snapshot").Return(cmd)

		gomega.Expect(redisCache.Set(ctx, "snapshot", "payload", 0)).To(gomega.BeTrue())

		retrieved, found := redisCache.Get(ctx, "snapshot")
		gomega.Expect(found).To(gomega.BeTrue())
		gomega.Expect(retrieved).To(gomega.Equal("payload"))
	})

	ginkgo.It("reports a miss on redis.Nil", func() {
		cmd := redis.NewStringCmd(ctx, "get", "missing")
		cmd.SetErr(redis.Nil)
		mockCacheClient.EXPECT().Get(gomock.Any(), "missing").Return(cmd)

		_, found := redisCache.Get(ctx, "missing")
		gomega.Expect(found).To(gomega.BeFalse())
	})

	ginkgo.It("passes the TTL through", func() {
		mockCacheClient.EXPECT().
			Set(gomock.Any(), "ttl", gomock.Any(), time.Second).
			Return(redis.NewStatusCmd(ctx, "OK"))

		gomega.Expect(redisCache.Set(ctx, "ttl", 1, time.Second)).To(gomega.BeTrue())
	})

	ginkgo.It("reports failed writes", func() {
		failed := redis.NewStatusCmd(ctx)
		failed.SetErr(errors.New("connection refused"))
		mockCacheClient.EXPECT().Set(gomock.Any(), "key", gomock.Any(), time.Duration(0)).Return(failed)

		gomega.Expect(redisCache.Set(ctx, "key", "value", 0)).To(gomega.BeFalse())
	})

	ginkgo.It("deletes keys", func() {
		mockCacheClient.EXPECT().Del(gomock.Any(), "gone").Return(redis.NewIntCmd(ctx, 1))
		redisCache.Delete(ctx, "gone")
	})

	ginkgo.It("loads and stores a missing key", func() {
		miss := redis.NewStringCmd(ctx, "get", "lazy")
		miss.SetErr(redis.Nil)
		mockCacheClient.EXPECT().Get(gomock.Any(), "lazy").Return(miss)
		mockCacheClient.EXPECT().
			Set(gomock.Any(), "lazy", []byte(`"loaded"`), time.Minute).
			Return(redis.NewStatusCmd(ctx, "OK"))

		value, err := redisCache.GetOrSet(ctx, "lazy", time.Minute, func() (any, error) { return "loaded", nil })
		gomega.Expect(err).NotTo(gomega.HaveOccurred())
		gomega.Expect(value).To(gomega.Equal("loaded"))
	})
})
