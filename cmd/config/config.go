package config

import (
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

// LoadFile parse the config from the file of the path
func LoadFile(path string, v interface{}) error {
	file, err := os.Open(path)
	if err != nil {
		return errors.WithStack(err)
	}
	defer file.Close()

	return LoadReader(file, v)
}

// LoadString parse the config from the string
func LoadString(data string, v interface{}) error {
	return LoadReader(strings.NewReader(data), v)
}

// LoadReader parse the config from the file of the reader
func LoadReader(r io.Reader, v interface{}) error {
	if _, err := toml.NewDecoder(r).Decode(v); err != nil {
		return errors.WithStack(err)
	}
	return nil
}

// LoadDotEnv loads the dotenv files into the process environment, missing files are skipped
func LoadDotEnv(paths ...string) error {
	for _, p := range paths {
		if _, err := os.Stat(p); os.IsNotExist(err) {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return errors.WithStack(err)
		}
	}
	return nil
}

// EnvString overrides *v with the environment value of the key when it is set
func EnvString(key string, v *string) {
	if s, has := os.LookupEnv(key); has && len(s) > 0 {
		*v = s
	}
}

// EnvInt overrides *v with the environment value of the key when it is set
func EnvInt(key string, v *int) error {
	s, has := os.LookupEnv(key)
	if !has || len(s) == 0 {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return errors.Wrap(err, key)
	}
	*v = n
	return nil
}
