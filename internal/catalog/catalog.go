// Package catalog serves the fixed list of themed programs.  The list is
// compiled into the binary; there is no persistence and no mutation path.
package catalog

import "github.com/iliyamo/kids-center-booking/internal/model"

var programs = []model.Program{
	{
		Key:             "pirates_treasure",
		Title:           "Пиратский клад",
		Description:     "Весёлое приключение с поиском сокровищ, морскими конкурсами и квестами.",
		RecommendedAge:  "5–9",
		DurationMinutes: 90,
		Price:           6900,
		Animators:       []string{"Капитан Джек", "Юнга Мими"},
		Cover:           "/images/pirates.jpg",
	},
	{
		Key:             "space_odyssey",
		Title:           "Космическая одиссея",
		Description:     "Научное шоу, опыты, планетарные игры и спасение космической станции.",
		RecommendedAge:  "7–12",
		DurationMinutes: 90,
		Price:           7900,
		Animators:       []string{"Астронавт Нео", "Робот Пикс"},
		Cover:           "/images/space.jpg",
	},
	{
		Key:             "fairy_unicorns",
		Title:           "Единороги и феи",
		Description:     "Сказочная анимация, блестки, аквагрим и волшебные мастер‑классы.",
		RecommendedAge:  "4–8",
		DurationMinutes: 75,
		Price:           6500,
		Animators:       []string{"Фея Лили", "Единорог Стар"},
		Cover:           "/images/unicorns.jpg",
	},
}

// Provider hands out copies of the compiled-in catalog.  The zero value is
// ready to use and safe for concurrent callers.
type Provider struct{}

// New returns a catalog provider.
func New() *Provider { return &Provider{} }

// List returns every program in catalog order.  The result is a deep copy.
func (p *Provider) List() []model.Program {
	out := make([]model.Program, len(programs))
	for i, pr := range programs {
		out[i] = clone(pr)
	}
	return out
}

// Get looks a program up by key.
func (p *Provider) Get(key string) (model.Program, bool) {
	for _, pr := range programs {
		if pr.Key == key {
			return clone(pr), true
		}
	}
	return model.Program{}, false
}

func clone(p model.Program) model.Program {
	p.Animators = append([]string(nil), p.Animators...)
	return p
}
