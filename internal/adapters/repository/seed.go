package repository

import (
	"fmt"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/okian/fog/internal/domain/model"
)

// Seed is the initial content of a MemStore.
type Seed struct {
	Cities    []model.City     `json:"cities"`
	Locations []model.Location `json:"locations"`
}

// Validate rejects non-positive and duplicate ids.
func (s Seed) Validate() error {
	seen := make(map[int64]struct{}, len(s.Cities))
	for _, c := range s.Cities {
		if c.ID <= 0 {
			return fmt.Errorf("%w: city %q has id %d", ErrInvalidSeed, c.Name, c.ID)
		}
		if _, dup := seen[c.ID]; dup {
			return fmt.Errorf("%w: duplicate city id %d", ErrInvalidSeed, c.ID)
		}
		seen[c.ID] = struct{}{}
	}
	seen = make(map[int64]struct{}, len(s.Locations))
	for _, l := range s.Locations {
		if l.ID <= 0 {
			return fmt.Errorf("%w: location %q has id %d", ErrInvalidSeed, l.Name, l.ID)
		}
		if _, dup := seen[l.ID]; dup {
			return fmt.Errorf("%w: duplicate location id %d", ErrInvalidSeed, l.ID)
		}
		seen[l.ID] = struct{}{}
	}
	return nil
}

// LoadSeedFile reads a YAML seed with top-level "cities" and "locations"
// lists whose keys match the JSON field names.
func LoadSeedFile(path string) (Seed, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return Seed{}, fmt.Errorf("%w: %s: %v", ErrInvalidSeed, path, err)
	}
	var seed Seed
	if err := k.UnmarshalWithConf("", &seed, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return Seed{}, fmt.Errorf("%w: %s: %v", ErrInvalidSeed, path, err)
	}
	if err := seed.Validate(); err != nil {
		return Seed{}, err
	}
	return seed, nil
}

// DefaultSeed returns a fresh copy of the built-in development data.
func DefaultSeed() Seed {
	date := func(s string) *string { return &s }
	return Seed{
		Cities: []model.City{
			{
				ID:             1,
				Name:           "北京",
				EnglishName:    "beijing",
				FirstVisitDate: date("2023-05-01 10:00:00"),
				Desc:           "工作，居住的地方",
				Bounds:         "[116.397428,39.90923,116.410108,39.903719]",
				CreateTime:     "2023-01-01 10:00:00",
				UpdateTime:     "2023-10-15 14:30:00",
			},
			{
				ID:             2,
				Name:           "上海",
				EnglishName:    "shanghai",
				FirstVisitDate: date("2023-06-20 09:00:00"),
				Desc:           "国际化大都市",
				Bounds:         "[121.472644,31.231706,121.487219,31.224009]",
				CreateTime:     "2023-01-02 10:00:00",
				UpdateTime:     "2023-12-01 11:00:00",
			},
			{
				ID:             3,
				Name:           "东京",
				EnglishName:    "tokyo",
				FirstVisitDate: date("2023-04-15 08:30:00"),
				Desc:           "日本首都",
				Bounds:         "[139.745431,35.658611,139.759664,35.652083]",
				CreateTime:     "2023-01-03 10:00:00",
				UpdateTime:     "2023-04-15 08:30:00",
			},
			{
				ID:             4,
				Name:           "纽约",
				EnglishName:    "newyork",
				FirstVisitDate: date("2023-07-01 12:00:00"),
				Desc:           "美国最大城市",
				Bounds:         "[-74.0060,40.7128,-73.9352,40.7484]",
				CreateTime:     "2023-01-04 10:00:00",
				UpdateTime:     "2023-09-20 15:00:00",
			},
			{
				ID:             5,
				Name:           "伦敦",
				EnglishName:    "london",
				FirstVisitDate: date("2023-03-10 09:00:00"),
				Desc:           "英国首都",
				Bounds:         "[-0.127647,51.507322,-0.106006,51.519864]",
				CreateTime:     "2023-01-05 10:00:00",
				UpdateTime:     "2023-03-10 09:00:00",
			},
		},
		Locations: []model.Location{
			{
				ID:          1,
				Name:        "北京火车站",
				CityID:      1,
				CityName:    "北京",
				Latitude:    39.9042,
				Longitude:   116.4276,
				Description: "北京站是北京铁路枢纽的重要组成部分，位于北京市东城区。",
				Feeling:     "非常宏伟的建筑，充满了历史的厚重感。",
				Images: []string{
					"https://images.unsplash.com/photo-1548685913-fe6678b0d5c7?w=400",
					"https://images.unsplash.com/photo-1555993539-1732b0258235?w=400",
				},
				CreateTime: "2023-05-01 10:00:00",
				UpdateTime: "2023-05-01 10:00:00",
			},
			{
				ID:          2,
				Name:        "上海外滩",
				CityID:      2,
				CityName:    "上海",
				Latitude:    31.2397,
				Longitude:   121.493,
				Description: "外滩是上海市中心的一个著名景点，位于黄浦江畔。",
				Feeling:     "夜景非常美丽，是上海的标志性景观。",
				Images:      []string{"https://images.unsplash.com/photo-1548685913-fe6678b0d5c7?w=400"},
				CreateTime:  "2023-06-20 09:00:00",
				UpdateTime:  "2023-06-20 09:00:00",
			},
			{
				ID:          3,
				Name:        "东京塔",
				CityID:      3,
				CityName:    "东京",
				Latitude:    35.6586,
				Longitude:   139.7454,
				Description: "东京塔是东京的标志性建筑，位于港区。",
				Feeling:     "从塔顶俯瞰东京全景，景色壮观。",
				Images: []string{
					"https://images.unsplash.com/photo-1540959733332-eab4deabeeaf?w=400",
					"https://images.unsplash.com/photo-1536098561742-ca998e48cbcc?w=400",
				},
				CreateTime: "2023-04-15 08:30:00",
				UpdateTime: "2023-04-15 08:30:00",
			},
			{
				ID:          4,
				Name:        "自由女神像",
				CityID:      4,
				CityName:    "纽约",
				Latitude:    40.6892,
				Longitude:   -74.0445,
				Description: "自由女神像是纽约的标志性建筑，位于自由岛上。",
				Feeling:     "象征着自由和民主，非常震撼。",
				Images:      []string{"https://images.unsplash.com/photo-1605130284535-11dd9eedc58a?w=400"},
				CreateTime:  "2023-07-01 12:00:00",
				UpdateTime:  "2023-07-01 12:00:00",
			},
			{
				ID:          5,
				Name:        "大本钟",
				CityID:      5,
				CityName:    "伦敦",
				Latitude:    51.5007,
				Longitude:   -0.1246,
				Description: "大本钟是伦敦的标志性建筑，位于威斯敏斯特宫。",
				Feeling:     "钟声悠扬，充满了英伦风情。",
				Images:      []string{"https://images.unsplash.com/photo-1529655683826-aba9b3e77383?w=400"},
				CreateTime:  "2023-03-10 09:00:00",
				UpdateTime:  "2023-03-10 09:00:00",
			},
		},
	}
}
