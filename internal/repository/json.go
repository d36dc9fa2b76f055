package repository

import (
	"context"
	"encoding/json"
	"errors"
	"os"

	"github.com/ghaggin/homesite/internal/config"
	"github.com/ghaggin/homesite/internal/model"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var (
	errTableFileIsDir = errors.New("table file is dir")
)

type Data struct {
	Users []model.User `json:"users"`
}

type jsonRepo struct {
	path string
	log  *zap.Logger

	data *Data
}

type JSONParams struct {
	fx.In

	Config *config.Config
	Log    *zap.Logger
}

func NewJSON(p JSONParams) (Repository, error) {
	r := &jsonRepo{
		path: p.Config.Repo.Path,
		log:  p.Log,
		data: &Data{},
	}

	err := r.readfile()
	if err != nil {
		// only log, the repo starts empty and add-user creates the
		// file on first Save
		r.log.Warn("failed reading json repo data file", zap.Error(err))
	}

	return r, nil
}

func (r *jsonRepo) readfile() error {
	finfo, err := os.Stat(r.path)
	if err != nil {
		return err
	}

	if finfo.IsDir() {
		return errTableFileIsDir
	}

	f, err := os.Open(r.path)
	if err != nil {
		return err
	}
	defer f.Close()

	return json.NewDecoder(f).Decode(&r.data)
}

func (r *jsonRepo) Save(_ context.Context) error {
	f, err := os.Create(r.path)
	if err != nil {
		return err
	}
	defer f.Close()

	b, err := json.MarshalIndent(r.data, "", "  ")
	if err != nil {
		return err
	}

	_, err = f.Write(b)
	return err
}

func (r *jsonRepo) GetUserByName(_ context.Context, name string) (*model.User, error) {
	for _, u := range r.data.Users {
		if u.Name == name {
			return &u, nil
		}
	}

	return nil, ErrNotFound
}

func (r *jsonRepo) AddUser(_ context.Context, user *model.User) error {
	for _, u := range r.data.Users {
		if u.Name == user.Name {
			return ErrExists
		}
	}

	r.data.Users = append(r.data.Users, *user)
	return nil
}

func (r *jsonRepo) GetUsers(_ context.Context) ([]model.User, error) {
	return r.data.Users, nil
}
