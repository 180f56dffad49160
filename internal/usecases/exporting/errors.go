package exporting

import "errors"

var ErrNoData = errors.New("nenhum dado encontrado na tabela")
