package core

import "go.mongodb.org/mongo-driver/bson"

// ─── Database Types ────────────────────────────────────────────────────────────

type MongoDatabaseName string
type MongoCollection string
type RedisKey string
type FluentdSubTag string

// ─── MongoDB ───────────────────────────────────────────────────────────────────
const (
	MongoDBPropertyOps MongoDatabaseName = "pms"
)

// MongoDB collections（沿用既有資料的集合名稱）
const (
	MongoCollectionUsers         MongoCollection = "usermodels"
	MongoCollectionTenants       MongoCollection = "tenants"
	MongoCollectionUnits         MongoCollection = "units"
	MongoCollectionProperties    MongoCollection = "properties"
	MongoCollectionLands         MongoCollection = "lands"
	MongoCollectionRents         MongoCollection = "rents"
	MongoCollectionCounters      MongoCollection = "counters"
	MongoCollectionNotifications MongoCollection = "notifications"
	MongoCollectionActivityLogs  MongoCollection = "activitylogmodels"
	MongoCollectionMaintenances  MongoCollection = "maintenances"
)

// counters 集合中的序號名稱
type CounterName string

const (
	CounterReceiptID  CounterName = "receiptId"
	CounterActivityID CounterName = "activityId"
)

// ─── Redis Keys ────────────────────────────────────────────────────────────────

const (
	RedisKeyServerName    RedisKey = "pms"            // 伺服器名稱
	RedisKeySchedulerLock RedisKey = "scheduler_lock" // 每日排程互斥鎖
)

const (
	FluentdRequest  FluentdSubTag = "request_log"
	FluentdResponse FluentdSubTag = "response_log"
	FluentdActivity FluentdSubTag = "activity_log"
)

type ListOptions struct {
	Filter bson.M `json:"filter,omitempty" bson:"filter,omitempty"`
	Page   int64  `json:"page,omitempty" bson:"page,omitempty"`
	Size   int64  `json:"size,omitempty" bson:"size,omitempty"`
}

// Skip 以 1 起算的頁碼換算 skip
func (o ListOptions) Skip() int64 {
	if o.Page <= 1 {
		return 0
	}
	return (o.Page - 1) * o.Size
}
