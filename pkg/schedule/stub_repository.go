package schedule

import "context"

type StubRepository struct {
	Data      map[int][]byte
	LoadErr   error
	SaveErr   error
	SaveCalls int
}

func NewStubRepository() *StubRepository {
	return &StubRepository{Data: make(map[int][]byte)}
}

func (s *StubRepository) Load(_ context.Context, userId int) ([]byte, bool, error) {
	if s.LoadErr != nil {
		return nil, false, s.LoadErr
	}
	data, ok := s.Data[userId]
	return data, ok, nil
}

func (s *StubRepository) Save(_ context.Context, userId int, data []byte) error {
	s.SaveCalls++
	if s.SaveErr != nil {
		return s.SaveErr
	}
	s.Data[userId] = data
	return nil
}
