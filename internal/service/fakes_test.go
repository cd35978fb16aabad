package service

import (
	"context"
	"errors"

	"skill-exchange-be/internal/entity"
	"skill-exchange-be/internal/repository/contract"
	"skill-exchange-be/internal/repository/specification"
	"skill-exchange-be/internal/repository/unitofwork"
	"skill-exchange-be/pkg/embedding"
	"skill-exchange-be/pkg/events"

	"github.com/google/uuid"
)

// In-memory repository fakes. Specifications are interpreted by concrete
// type since the real ones only know how to build gorm queries.

type fakeUserRepo struct {
	users map[uuid.UUID]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*entity.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	r.users[user.Id] = user
	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *entity.User) error {
	r.users[user.Id] = user
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) FindOne(_ context.Context, specs ...specification.Specification) (*entity.User, error) {
	for _, u := range r.users {
		if userMatches(u, specs) {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindAll(_ context.Context, specs ...specification.Specification) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range r.users {
		if userMatches(u, specs) {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, _ := r.FindAll(ctx, specs...)
	return int64(len(all)), nil
}

func userMatches(u *entity.User, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			if u.Id != s.ID {
				return false
			}
		case specification.ByEmail:
			if u.Email != s.Email {
				return false
			}
		case specification.ByUsername:
			if u.Username != s.Username {
				return false
			}
		}
	}
	return true
}

type fakeSkillRepo struct {
	skills  map[uuid.UUID]*entity.Skill
	deleted []uuid.UUID
}

func newFakeSkillRepo() *fakeSkillRepo {
	return &fakeSkillRepo{skills: make(map[uuid.UUID]*entity.Skill)}
}

func (r *fakeSkillRepo) Create(_ context.Context, skill *entity.Skill) error {
	r.skills[skill.Id] = skill
	return nil
}

func (r *fakeSkillRepo) Update(_ context.Context, skill *entity.Skill) error {
	r.skills[skill.Id] = skill
	return nil
}

func (r *fakeSkillRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.skills, id)
	r.deleted = append(r.deleted, id)
	return nil
}

func (r *fakeSkillRepo) DeleteMany(_ context.Context, ids []uuid.UUID) error {
	for _, id := range ids {
		delete(r.skills, id)
	}
	r.deleted = append(r.deleted, ids...)
	return nil
}

func (r *fakeSkillRepo) FindOne(_ context.Context, specs ...specification.Specification) (*entity.Skill, error) {
	for _, sk := range r.skills {
		if skillMatches(sk, specs) {
			return sk, nil
		}
	}
	return nil, nil
}

func (r *fakeSkillRepo) FindAll(_ context.Context, specs ...specification.Specification) ([]*entity.Skill, error) {
	var out []*entity.Skill
	for _, sk := range r.skills {
		if skillMatches(sk, specs) {
			out = append(out, sk)
		}
	}
	return out, nil
}

func (r *fakeSkillRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, _ := r.FindAll(ctx, specs...)
	return int64(len(all)), nil
}

func skillMatches(sk *entity.Skill, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			if sk.Id != s.ID {
				return false
			}
		case specification.ByIDs:
			found := false
			for _, id := range s.IDs {
				if sk.Id == id {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		case specification.OwnedBy:
			if sk.UserId != s.UserID {
				return false
			}
		case specification.BySkillType:
			if string(sk.Type) != s.Type {
				return false
			}
		}
	}
	return true
}

// fakeVectorRepo scripts search results and records every call.
type fakeVectorRepo struct {
	searchResults [][]contract.ScoredSkillPoint
	searchCalls   []vectorSearchCall
	countResult   int64
	upserts       map[uuid.UUID][]float32
	deleted       []uuid.UUID
}

type vectorSearchCall struct {
	limit     int
	offset    int
	threshold *float64
}

func newFakeVectorRepo() *fakeVectorRepo {
	return &fakeVectorRepo{upserts: make(map[uuid.UUID][]float32)}
}

func (r *fakeVectorRepo) Upsert(_ context.Context, skillId uuid.UUID, vector []float32, _ entity.SkillType) error {
	r.upserts[skillId] = vector
	return nil
}

func (r *fakeVectorRepo) Delete(_ context.Context, skillId uuid.UUID) error {
	r.deleted = append(r.deleted, skillId)
	return nil
}

func (r *fakeVectorRepo) DeleteMany(_ context.Context, skillIds []uuid.UUID) error {
	r.deleted = append(r.deleted, skillIds...)
	return nil
}

func (r *fakeVectorRepo) Search(_ context.Context, _ []float32, _ *entity.SkillType, limit, offset int, scoreThreshold *float64) ([]contract.ScoredSkillPoint, error) {
	r.searchCalls = append(r.searchCalls, vectorSearchCall{limit: limit, offset: offset, threshold: scoreThreshold})
	if len(r.searchResults) == 0 {
		return nil, nil
	}
	res := r.searchResults[0]
	r.searchResults = r.searchResults[1:]
	return res, nil
}

func (r *fakeVectorRepo) Count(_ context.Context, _ *entity.SkillType) (int64, error) {
	return r.countResult, nil
}

type fakeChatRepo struct {
	chats map[uuid.UUID]*entity.Chat
}

func newFakeChatRepo() *fakeChatRepo {
	return &fakeChatRepo{chats: make(map[uuid.UUID]*entity.Chat)}
}

func (r *fakeChatRepo) GetOrCreate(_ context.Context, userAId, userBId uuid.UUID) (*entity.Chat, error) {
	user1Id, user2Id := userAId, userBId
	if user1Id.String() > user2Id.String() {
		user1Id, user2Id = user2Id, user1Id
	}
	for _, c := range r.chats {
		if c.User1Id == user1Id && c.User2Id == user2Id {
			return c, nil
		}
	}
	chat := &entity.Chat{Id: uuid.New(), User1Id: user1Id, User2Id: user2Id}
	r.chats[chat.Id] = chat
	return chat, nil
}

func (r *fakeChatRepo) FindOne(_ context.Context, specs ...specification.Specification) (*entity.Chat, error) {
	for _, c := range r.chats {
		if chatMatches(c, specs) {
			return c, nil
		}
	}
	return nil, nil
}

func (r *fakeChatRepo) FindAll(_ context.Context, specs ...specification.Specification) ([]*entity.Chat, error) {
	var out []*entity.Chat
	for _, c := range r.chats {
		if chatMatches(c, specs) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeChatRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, _ := r.FindAll(ctx, specs...)
	return int64(len(all)), nil
}

func chatMatches(c *entity.Chat, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			if c.Id != s.ID {
				return false
			}
		case specification.WithParticipant:
			if !c.HasParticipant(s.UserID) {
				return false
			}
		}
	}
	return true
}

type fakeMessageRepo struct {
	messages []*entity.Message
}

func (r *fakeMessageRepo) Create(_ context.Context, message *entity.Message) error {
	r.messages = append(r.messages, message)
	return nil
}

func (r *fakeMessageRepo) FindOne(_ context.Context, specs ...specification.Specification) (*entity.Message, error) {
	for _, m := range r.messages {
		if messageMatches(m, specs) {
			return m, nil
		}
	}
	return nil, nil
}

func (r *fakeMessageRepo) FindAll(_ context.Context, specs ...specification.Specification) ([]*entity.Message, error) {
	var out []*entity.Message
	for _, m := range r.messages {
		if messageMatches(m, specs) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeMessageRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, _ := r.FindAll(ctx, specs...)
	return int64(len(all)), nil
}

func (r *fakeMessageRepo) LastForChat(_ context.Context, chatId uuid.UUID) (*entity.Message, error) {
	var last *entity.Message
	for _, m := range r.messages {
		if m.ChatId != chatId {
			continue
		}
		if last == nil || m.CreatedAt.After(last.CreatedAt) {
			last = m
		}
	}
	return last, nil
}

func messageMatches(m *entity.Message, specs []specification.Specification) bool {
	for _, spec := range specs {
		if s, ok := spec.(specification.ByChatID); ok && m.ChatId != s.ChatID {
			return false
		}
	}
	return true
}

type fakeUnitOfWork struct {
	users    *fakeUserRepo
	skills   *fakeSkillRepo
	vectors  *fakeVectorRepo
	chats    *fakeChatRepo
	messages *fakeMessageRepo

	inTx      bool
	begins    int
	commits   int
	rollbacks int
}

func newFakeUnitOfWork() *fakeUnitOfWork {
	return &fakeUnitOfWork{
		users:    newFakeUserRepo(),
		skills:   newFakeSkillRepo(),
		vectors:  newFakeVectorRepo(),
		chats:    newFakeChatRepo(),
		messages: &fakeMessageRepo{},
	}
}

func (u *fakeUnitOfWork) Begin(context.Context) error {
	u.begins++
	u.inTx = true
	return nil
}

func (u *fakeUnitOfWork) Commit() error {
	u.commits++
	u.inTx = false
	return nil
}

// Rollback only counts while a transaction is open, mirroring the real
// implementation where a deferred rollback after commit is a no-op.
func (u *fakeUnitOfWork) Rollback() error {
	if u.inTx {
		u.rollbacks++
		u.inTx = false
	}
	return nil
}

func (u *fakeUnitOfWork) UserRepository() contract.UserRepository               { return u.users }
func (u *fakeUnitOfWork) SkillRepository() contract.SkillRepository             { return u.skills }
func (u *fakeUnitOfWork) SkillVectorRepository() contract.SkillVectorRepository { return u.vectors }
func (u *fakeUnitOfWork) ChatRepository() contract.ChatRepository               { return u.chats }
func (u *fakeUnitOfWork) MessageRepository() contract.MessageRepository         { return u.messages }

type fakeFactory struct {
	uow *fakeUnitOfWork
}

func (f *fakeFactory) NewUnitOfWork(context.Context) unitofwork.UnitOfWork { return f.uow }

var _ unitofwork.RepositoryFactory = (*fakeFactory)(nil)

// fakeProvider returns a scripted vector and counts calls.
type fakeProvider struct {
	vector []float32
	err    error
	calls  int
}

func (p *fakeProvider) Generate(string, string) (*embedding.EmbeddingResponse, error) {
	p.calls++
	if p.err != nil {
		return nil, p.err
	}
	return &embedding.EmbeddingResponse{
		Embedding: embedding.EmbeddingResponseEmbedding{Values: p.vector},
	}, nil
}

type fakePublisher struct {
	events []events.Event
	err    error
}

func (p *fakePublisher) Publish(_ context.Context, evt events.Event) error {
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, evt)
	return nil
}

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }

var errProviderDown = errors.New("connection refused")
