package database

import (
	client "pms/internal/database/client"
	fluentdRepo "pms/internal/database/fluentd/repository"
	mongoRepo "pms/internal/database/mongodb/repository"
	redisRepo "pms/internal/database/redis/repository"

	"github.com/google/wire"
)

// ProviderSet 定義所有 DB Client 與 repository 的依賴
var ProviderSet = wire.NewSet(
	client.NewMongoClient,
	client.NewRedisClient,
	client.NewFluentdClient,
	mongoRepo.ProviderSet,
	redisRepo.ProviderSet,
	fluentdRepo.ProviderSet,
)
