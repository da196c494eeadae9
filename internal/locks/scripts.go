package locks

import "github.com/redis/go-redis/v9"

// Lua script for conditional lock acquisition - prevents race conditions
//
// The write goes through only when no entry exists for the seat or the
// existing entry has already expired. Time comes from the Redis server
// clock so every client evaluates the same "now".
const luaAcquireLock = `
-- KEYS[1] = lock key (<table>:<seat_id>)
-- ARGV[1] = seat_id
-- ARGV[2] = event_id
-- ARGV[3] = user_id
-- ARGV[4] = lock_id
-- ARGV[5] = ttl in milliseconds

local t = redis.call("TIME")
local now = t[1] * 1000 + math.floor(t[2] / 1000)

-- Acquire succeeds iff the entry is absent or expires_at < now
local exp = redis.call("HGET", KEYS[1], "expires_at")
if exp and tonumber(exp) >= now then
    return {0, redis.call("HGET", KEYS[1], "user_id") or ""}
end

local new_exp = now + tonumber(ARGV[5])
redis.call("HSET", KEYS[1],
    "seat_id", ARGV[1],
    "event_id", ARGV[2],
    "user_id", ARGV[3],
    "lock_id", ARGV[4],
    "created_at", tostring(now),
    "expires_at", tostring(new_exp)
)

-- Let the store reclaim the entry on its own once the lease lapses
redis.call("PEXPIREAT", KEYS[1], new_exp)

return {1, tostring(new_exp)}
`

// Lua script for extending a held lock
//
// Only the current holder may extend, identified by user_id and lock_id,
// and only while the lease is still live (expires_at > now).
const luaExtendLock = `
-- KEYS[1] = lock key
-- ARGV[1] = user_id
-- ARGV[2] = lock_id
-- ARGV[3] = ttl in milliseconds

local t = redis.call("TIME")
local now = t[1] * 1000 + math.floor(t[2] / 1000)

local vals = redis.call("HMGET", KEYS[1], "user_id", "lock_id", "expires_at")
if not vals[1] then
    return {0, "absent"}
end
if vals[1] ~= ARGV[1] or vals[2] ~= ARGV[2] then
    return {0, "not_owner"}
end
if tonumber(vals[3]) <= now then
    return {0, "expired"}
end

local new_exp = now + tonumber(ARGV[3])
redis.call("HSET", KEYS[1], "expires_at", tostring(new_exp))
redis.call("PEXPIREAT", KEYS[1], new_exp)

return {1, tostring(new_exp)}
`

// Lua script for releasing a held lock
//
// Conditional delete: the entry goes away only when user_id and lock_id
// both match. Expiry is not checked, releasing a lapsed lease you still
// own is harmless.
const luaReleaseLock = `
-- KEYS[1] = lock key
-- ARGV[1] = user_id
-- ARGV[2] = lock_id

local vals = redis.call("HMGET", KEYS[1], "user_id", "lock_id")
if not vals[1] then
    return {0, "absent"}
end
if vals[1] ~= ARGV[1] or vals[2] ~= ARGV[2] then
    return {0, "not_owner"}
end

redis.call("DEL", KEYS[1])

return {1, "released"}
`

// Lua script for validating lock ownership without mutating the entry
const luaValidateLock = `
-- KEYS[1] = lock key
-- ARGV[1] = user_id
-- ARGV[2] = lock_id

local t = redis.call("TIME")
local now = t[1] * 1000 + math.floor(t[2] / 1000)

local vals = redis.call("HMGET", KEYS[1], "user_id", "lock_id", "expires_at")
if not vals[1] then
    return {0, "absent"}
end
if vals[1] ~= ARGV[1] or vals[2] ~= ARGV[2] then
    return {0, "not_owner"}
end
if tonumber(vals[3]) <= now then
    return {0, "expired"}
end

return {1, vals[3]}
`

// Lua script answering "is this seat locked right now"
//
// A seat counts as locked iff an entry exists with expires_at > now.
const luaIsLocked = `
-- KEYS[1] = lock key

local t = redis.call("TIME")
local now = t[1] * 1000 + math.floor(t[2] / 1000)

local exp = redis.call("HGET", KEYS[1], "expires_at")
if exp and tonumber(exp) > now then
    return 1
end
return 0
`

// Lua script for reaping a single expired entry
//
// Deletes the entry iff expires_at <= now, so the sweep never removes a
// lease that went live again between scan and delete.
const luaReapLock = `
-- KEYS[1] = lock key

local t = redis.call("TIME")
local now = t[1] * 1000 + math.floor(t[2] / 1000)

local exp = redis.call("HGET", KEYS[1], "expires_at")
if exp and tonumber(exp) <= now then
    redis.call("DEL", KEYS[1])
    return 1
end
return 0
`

// Script handles run EVALSHA first and fall back to EVAL when the script
// is not cached on the server yet.
var (
	acquireScript  = redis.NewScript(luaAcquireLock)
	extendScript   = redis.NewScript(luaExtendLock)
	releaseScript  = redis.NewScript(luaReleaseLock)
	validateScript = redis.NewScript(luaValidateLock)
	isLockedScript = redis.NewScript(luaIsLocked)
	reapScript     = redis.NewScript(luaReapLock)
)
