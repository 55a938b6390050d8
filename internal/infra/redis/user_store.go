package redis

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"ecodesafios-backend/internal/domain"
)

// UserStore keeps accounts in Redis hashes. Point awards use HINCRBY, so
// concurrent submissions from the same account never lose an update.
//
// Layout:
//
//	user:{id}           hash: username, email, password, points
//	user:{id}:completed set of completed challenge ids
//	user:name:{name}    -> id
//	users:next_id       counter
type UserStore struct {
	client *redis.Client
}

func NewUserStore(client *redis.Client) *UserStore {
	return &UserStore{client: client}
}

// SeedDemoUser creates the demo account if it does not exist yet.
func (s *UserStore) SeedDemoUser(ctx context.Context) error {
	_, exists, err := s.GetUserByUsername(ctx, "demo")
	if err != nil || exists {
		return err
	}
	_, err = s.CreateUser(ctx, "demo", "demo@exemplo.com", "")
	return err
}

func (s *UserStore) GetUser(ctx context.Context, userID int) (domain.User, error) {
	fields, err := s.client.HGetAll(ctx, s.userKey(userID)).Result()
	if err != nil {
		return domain.User{}, fmt.Errorf("load user %d: %w", userID, err)
	}
	if len(fields) == 0 {
		return domain.User{}, domain.ErrUserNotFound
	}

	points, _ := strconv.Atoi(fields["points"])
	user := domain.User{
		ID:       userID,
		Username: fields["username"],
		Email:    fields["email"],
		Password: fields["password"],
		Points:   points,
	}

	completed, err := s.client.SMembers(ctx, s.completedKey(userID)).Result()
	if err != nil {
		return domain.User{}, fmt.Errorf("load completed challenges: %w", err)
	}
	user.CompletedChallenges = make([]int, 0, len(completed))
	for _, raw := range completed {
		if id, err := strconv.Atoi(raw); err == nil {
			user.CompletedChallenges = append(user.CompletedChallenges, id)
		}
	}
	return user, nil
}

func (s *UserStore) GetUserByUsername(ctx context.Context, username string) (domain.User, bool, error) {
	raw, err := s.client.Get(ctx, s.nameKey(username)).Result()
	if err == redis.Nil {
		return domain.User{}, false, nil
	}
	if err != nil {
		return domain.User{}, false, fmt.Errorf("resolve username: %w", err)
	}
	id, err := strconv.Atoi(raw)
	if err != nil {
		return domain.User{}, false, fmt.Errorf("bad user id %q: %w", raw, err)
	}
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return domain.User{}, false, err
	}
	return user, true, nil
}

func (s *UserStore) CreateUser(ctx context.Context, username, email, passwordHash string) (domain.User, error) {
	id64, err := s.client.Incr(ctx, "users:next_id").Result()
	if err != nil {
		return domain.User{}, fmt.Errorf("allocate user id: %w", err)
	}
	id := int(id64)

	ok, err := s.client.SetNX(ctx, s.nameKey(username), strconv.Itoa(id), 0).Result()
	if err != nil {
		return domain.User{}, fmt.Errorf("claim username: %w", err)
	}
	if !ok {
		return domain.User{}, domain.ErrUsernameTaken
	}

	if err := s.client.HSet(ctx, s.userKey(id),
		"username", username,
		"email", email,
		"password", passwordHash,
		"points", 0,
	).Err(); err != nil {
		return domain.User{}, fmt.Errorf("store user: %w", err)
	}

	return domain.User{ID: id, Username: username, Email: email, Password: passwordHash, CompletedChallenges: []int{}}, nil
}

func (s *UserStore) AwardPoints(ctx context.Context, userID, points int) (int, error) {
	exists, err := s.client.Exists(ctx, s.userKey(userID)).Result()
	if err != nil {
		return 0, fmt.Errorf("check user: %w", err)
	}
	if exists == 0 {
		return 0, domain.ErrUserNotFound
	}
	total, err := s.client.HIncrBy(ctx, s.userKey(userID), "points", int64(points)).Result()
	if err != nil {
		return 0, fmt.Errorf("award points: %w", err)
	}
	return int(total), nil
}

func (s *UserStore) RecordChallengeCompletion(ctx context.Context, userID, challengeID, points int) (int, error) {
	exists, err := s.client.Exists(ctx, s.userKey(userID)).Result()
	if err != nil {
		return 0, fmt.Errorf("check user: %w", err)
	}
	if exists == 0 {
		return 0, domain.ErrUserNotFound
	}

	added, err := s.client.SAdd(ctx, s.completedKey(userID), challengeID).Result()
	if err != nil {
		return 0, fmt.Errorf("record completion: %w", err)
	}
	if added == 0 {
		return 0, domain.ErrChallengeCompleted
	}

	total, err := s.client.HIncrBy(ctx, s.userKey(userID), "points", int64(points)).Result()
	if err != nil {
		return 0, fmt.Errorf("award challenge points: %w", err)
	}
	return int(total), nil
}

func (s *UserStore) userKey(id int) string {
	return "user:" + strconv.Itoa(id)
}

func (s *UserStore) completedKey(id int) string {
	return "user:" + strconv.Itoa(id) + ":completed"
}

func (s *UserStore) nameKey(username string) string {
	return "user:name:" + username
}
