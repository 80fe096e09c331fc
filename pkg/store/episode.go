package store

import (
	"github.com/kerbaras/storyline/pkg/api"
	"github.com/kerbaras/storyline/pkg/data"
)

type EpisodeState struct {
	Episodes []data.Episode
	Episode  *data.Episode

	Loading struct {
		List   bool
		Single bool
		Create bool
	}
	Error string
}

func (s *EpisodeState) StartList() {
	s.Loading.List = true
	s.Error = ""
}

func (s *EpisodeState) FinishList(episodes []data.Episode) {
	s.Episodes = episodes
	s.Loading.List = false
}

func (s *EpisodeState) FailList(err error) {
	s.Loading.List = false
	s.Episodes = nil
	s.Error = errText(err)
}

func (s *EpisodeState) StartSingle() {
	s.Loading.Single = true
	s.Error = ""
}

func (s *EpisodeState) FinishSingle(episode *data.Episode) {
	s.Episode = episode
	s.Loading.Single = false
}

func (s *EpisodeState) FailSingle(err error) {
	s.Loading.Single = false
	s.Episode = nil
	s.Error = errText(err)
}

func (s *EpisodeState) StartCreate() {
	s.Loading.Create = true
	s.Error = ""
}

func (s *EpisodeState) FinishCreate(episode data.Episode) {
	s.Episodes = append(s.Episodes, episode)
	s.Loading.Create = false
}

func (s *EpisodeState) FailCreate(err error) {
	s.Loading.Create = false
	s.Error = errText(err)
}

type CharacterState struct {
	Characters []data.Character

	Loading struct {
		List   bool
		Create bool
		Update bool
		Delete bool
	}
	Errors struct {
		List   string
		Create []string
		Update []string
		Delete string
	}
}

func (s *CharacterState) StartList() {
	s.Loading.List = true
	s.Errors.List = ""
}

func (s *CharacterState) FinishList(characters []data.Character) {
	s.Characters = characters
	s.Loading.List = false
}

func (s *CharacterState) FailList(err error) {
	s.Loading.List = false
	s.Characters = nil
	s.Errors.List = errText(err)
}

func (s *CharacterState) StartCreate() {
	s.Loading.Create = true
	s.Errors.Create = nil
}

// FinishCreate prepends, matching the order the characters menu shows.
func (s *CharacterState) FinishCreate(character data.Character) {
	s.Characters = append([]data.Character{character}, s.Characters...)
	s.Loading.Create = false
}

func (s *CharacterState) FailCreate(err error) {
	s.Loading.Create = false
	s.Errors.Create = api.ErrorMessages(err)
}

func (s *CharacterState) StartUpdate() {
	s.Loading.Update = true
	s.Errors.Update = nil
}

func (s *CharacterState) FinishUpdate(character data.Character) {
	for i := range s.Characters {
		if s.Characters[i].ID == character.ID {
			s.Characters[i] = character
			break
		}
	}
	s.Loading.Update = false
}

func (s *CharacterState) FailUpdate(err error) {
	s.Loading.Update = false
	s.Errors.Update = api.ErrorMessages(err)
}

func (s *CharacterState) StartDelete() {
	s.Loading.Delete = true
	s.Errors.Delete = ""
}

func (s *CharacterState) FinishDelete(id int) {
	out := s.Characters[:0]
	for _, c := range s.Characters {
		if c.ID != id {
			out = append(out, c)
		}
	}
	s.Characters = out
	s.Loading.Delete = false
}

func (s *CharacterState) FailDelete(err error) {
	s.Loading.Delete = false
	s.Errors.Delete = errText(err)
}
