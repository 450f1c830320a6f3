// Package repository — доступ к Postgres (pgx, сырой SQL).
//
// Сентинельные ошибки общие для всех репозиториев: верхние слои по ним
// выбирают HTTP-статус. ErrNotFound покрывает и «ресурс скрыт» (черновик
// чужого журнала отдаётся как 404, а не 403 — чтобы не выдавать сам факт
// существования черновика).
package repository

import "errors"

var ErrNotFound = errors.New("not found")

// ErrForbidden — операция над чужим ресурсом. Хендлеры переводят в 403.
var ErrForbidden = errors.New("forbidden")

// ErrDuplicate — нарушение уникальности (например, повторный email).
var ErrDuplicate = errors.New("duplicate")
