package db

import (
	"fmt"

	"github.com/qualair/airquality-backend/internal/types"
)

func f(v float64) *float64 { return &v }

// LoadSampleData inserts the reference dataset when the table is empty.
// An already populated database is left untouched.
func (s *Service) LoadSampleData() error {
	var count int64
	if err := s.db.Model(&types.Measurement{}).Count(&count).Error; err != nil {
		return fmt.Errorf("count existing records: %w", err)
	}
	if count > 0 {
		s.log.Info("Database already contains records, skipping seed", "count", count)
		return nil
	}

	records := sampleMeasurements()
	if err := s.db.Create(&records).Error; err != nil {
		return fmt.Errorf("insert sample records: %w", err)
	}
	s.log.Info("Loaded sample records", "count", len(records))
	return nil
}

func sampleMeasurements() []*types.Measurement {
	return []*types.Measurement{
		// Île-de-France
		{Commune: "Paris", CodeInsee: "75056", Region: "Île-de-France", Departement: "Paris", Annee: 2020, No2: f(32.5), Pm10: f(22.1), Pm25: f(14.2), O3: f(45.3), Latitude: f(48.8566), Longitude: f(2.3522)},
		{Commune: "Paris", CodeInsee: "75056", Region: "Île-de-France", Departement: "Paris", Annee: 2021, No2: f(28.3), Pm10: f(20.5), Pm25: f(12.8), O3: f(48.1), Latitude: f(48.8566), Longitude: f(2.3522)},
		{Commune: "Paris", CodeInsee: "75056", Region: "Île-de-France", Departement: "Paris", Annee: 2022, No2: f(25.1), Pm10: f(18.9), Pm25: f(11.5), O3: f(51.2), Latitude: f(48.8566), Longitude: f(2.3522)},
		{Commune: "Versailles", CodeInsee: "78646", Region: "Île-de-France", Departement: "Yvelines", Annee: 2020, No2: f(18.2), Pm10: f(16.8), Pm25: f(10.5), O3: f(52.1), Latitude: f(48.8014), Longitude: f(2.1301)},
		{Commune: "Versailles", CodeInsee: "78646", Region: "Île-de-France", Departement: "Yvelines", Annee: 2021, No2: f(16.5), Pm10: f(15.2), Pm25: f(9.8), O3: f(54.3), Latitude: f(48.8014), Longitude: f(2.1301)},
		{Commune: "Versailles", CodeInsee: "78646", Region: "Île-de-France", Departement: "Yvelines", Annee: 2022, No2: f(14.8), Pm10: f(14.1), Pm25: f(9.1), O3: f(55.8), Latitude: f(48.8014), Longitude: f(2.1301)},
		// Auvergne-Rhône-Alpes
		{Commune: "Lyon", CodeInsee: "69123", Region: "Auvergne-Rhône-Alpes", Departement: "Rhône", Annee: 2020, No2: f(28.4), Pm10: f(20.3), Pm25: f(13.1), O3: f(48.5), Latitude: f(45.7640), Longitude: f(4.8357)},
		{Commune: "Lyon", CodeInsee: "69123", Region: "Auvergne-Rhône-Alpes", Departement: "Rhône", Annee: 2021, No2: f(25.2), Pm10: f(18.7), Pm25: f(11.8), O3: f(50.2), Latitude: f(45.7640), Longitude: f(4.8357)},
		{Commune: "Lyon", CodeInsee: "69123", Region: "Auvergne-Rhône-Alpes", Departement: "Rhône", Annee: 2022, No2: f(22.8), Pm10: f(17.2), Pm25: f(10.9), O3: f(52.8), Latitude: f(45.7640), Longitude: f(4.8357)},
		{Commune: "Grenoble", CodeInsee: "38185", Region: "Auvergne-Rhône-Alpes", Departement: "Isère", Annee: 2020, No2: f(24.1), Pm10: f(19.5), Pm25: f(12.8), O3: f(46.2), Latitude: f(45.1885), Longitude: f(5.7245)},
		{Commune: "Grenoble", CodeInsee: "38185", Region: "Auvergne-Rhône-Alpes", Departement: "Isère", Annee: 2021, No2: f(21.8), Pm10: f(17.8), Pm25: f(11.5), O3: f(48.9), Latitude: f(45.1885), Longitude: f(5.7245)},
		{Commune: "Grenoble", CodeInsee: "38185", Region: "Auvergne-Rhône-Alpes", Departement: "Isère", Annee: 2022, No2: f(19.5), Pm10: f(16.2), Pm25: f(10.3), O3: f(51.3), Latitude: f(45.1885), Longitude: f(5.7245)},
		// Provence-Alpes-Côte d'Azur
		{Commune: "Marseille", CodeInsee: "13055", Region: "Provence-Alpes-Côte d'Azur", Departement: "Bouches-du-Rhône", Annee: 2020, No2: f(30.2), Pm10: f(24.5), Pm25: f(15.8), O3: f(58.3), Latitude: f(43.2965), Longitude: f(5.3698)},
		{Commune: "Marseille", CodeInsee: "13055", Region: "Provence-Alpes-Côte d'Azur", Departement: "Bouches-du-Rhône", Annee: 2021, No2: f(27.5), Pm10: f(22.1), Pm25: f(14.2), O3: f(61.2), Latitude: f(43.2965), Longitude: f(5.3698)},
		{Commune: "Marseille", CodeInsee: "13055", Region: "Provence-Alpes-Côte d'Azur", Departement: "Bouches-du-Rhône", Annee: 2022, No2: f(24.8), Pm10: f(20.5), Pm25: f(13.1), O3: f(63.8), Latitude: f(43.2965), Longitude: f(5.3698)},
		{Commune: "Nice", CodeInsee: "06088", Region: "Provence-Alpes-Côte d'Azur", Departement: "Alpes-Maritimes", Annee: 2020, No2: f(26.8), Pm10: f(21.2), Pm25: f(13.5), O3: f(62.1), Latitude: f(43.7102), Longitude: f(7.2620)},
		{Commune: "Nice", CodeInsee: "06088", Region: "Provence-Alpes-Côte d'Azur", Departement: "Alpes-Maritimes", Annee: 2021, No2: f(24.2), Pm10: f(19.5), Pm25: f(12.3), O3: f(64.5), Latitude: f(43.7102), Longitude: f(7.2620)},
		{Commune: "Nice", CodeInsee: "06088", Region: "Provence-Alpes-Côte d'Azur", Departement: "Alpes-Maritimes", Annee: 2022, No2: f(21.8), Pm10: f(18.1), Pm25: f(11.5), O3: f(66.2), Latitude: f(43.7102), Longitude: f(7.2620)},
		// Nouvelle-Aquitaine
		{Commune: "Bordeaux", CodeInsee: "33063", Region: "Nouvelle-Aquitaine", Departement: "Gironde", Annee: 2020, No2: f(22.5), Pm10: f(17.8), Pm25: f(11.2), O3: f(49.5), Latitude: f(44.8378), Longitude: f(-0.5792)},
		{Commune: "Bordeaux", CodeInsee: "33063", Region: "Nouvelle-Aquitaine", Departement: "Gironde", Annee: 2021, No2: f(20.1), Pm10: f(16.2), Pm25: f(10.1), O3: f(51.8), Latitude: f(44.8378), Longitude: f(-0.5792)},
		{Commune: "Bordeaux", CodeInsee: "33063", Region: "Nouvelle-Aquitaine", Departement: "Gironde", Annee: 2022, No2: f(18.2), Pm10: f(14.8), Pm25: f(9.2), O3: f(53.5), Latitude: f(44.8378), Longitude: f(-0.5792)},
		// Occitanie
		{Commune: "Toulouse", CodeInsee: "31555", Region: "Occitanie", Departement: "Haute-Garonne", Annee: 2020, No2: f(24.8), Pm10: f(18.5), Pm25: f(11.8), O3: f(52.3), Latitude: f(43.6047), Longitude: f(1.4442)},
		{Commune: "Toulouse", CodeInsee: "31555", Region: "Occitanie", Departement: "Haute-Garonne", Annee: 2021, No2: f(22.3), Pm10: f(16.9), Pm25: f(10.6), O3: f(54.8), Latitude: f(43.6047), Longitude: f(1.4442)},
		{Commune: "Toulouse", CodeInsee: "31555", Region: "Occitanie", Departement: "Haute-Garonne", Annee: 2022, No2: f(20.1), Pm10: f(15.5), Pm25: f(9.8), O3: f(56.5), Latitude: f(43.6047), Longitude: f(1.4442)},
		{Commune: "Montpellier", CodeInsee: "34172", Region: "Occitanie", Departement: "Hérault", Annee: 2020, No2: f(21.5), Pm10: f(17.2), Pm25: f(10.8), O3: f(55.8), Latitude: f(43.6108), Longitude: f(3.8767)},
		{Commune: "Montpellier", CodeInsee: "34172", Region: "Occitanie", Departement: "Hérault", Annee: 2021, No2: f(19.2), Pm10: f(15.8), Pm25: f(9.8), O3: f(58.2), Latitude: f(43.6108), Longitude: f(3.8767)},
		{Commune: "Montpellier", CodeInsee: "34172", Region: "Occitanie", Departement: "Hérault", Annee: 2022, No2: f(17.5), Pm10: f(14.5), Pm25: f(9.1), O3: f(60.1), Latitude: f(43.6108), Longitude: f(3.8767)},
		// Hauts-de-France
		{Commune: "Lille", CodeInsee: "59350", Region: "Hauts-de-France", Departement: "Nord", Annee: 2020, No2: f(26.2), Pm10: f(21.5), Pm25: f(14.1), O3: f(42.5), Latitude: f(50.6292), Longitude: f(3.0573)},
		{Commune: "Lille", CodeInsee: "59350", Region: "Hauts-de-France", Departement: "Nord", Annee: 2021, No2: f(23.8), Pm10: f(19.8), Pm25: f(12.8), O3: f(44.8), Latitude: f(50.6292), Longitude: f(3.0573)},
		{Commune: "Lille", CodeInsee: "59350", Region: "Hauts-de-France", Departement: "Nord", Annee: 2022, No2: f(21.5), Pm10: f(18.2), Pm25: f(11.8), O3: f(46.5), Latitude: f(50.6292), Longitude: f(3.0573)},
		// Grand Est
		{Commune: "Strasbourg", CodeInsee: "67482", Region: "Grand Est", Departement: "Bas-Rhin", Annee: 2020, No2: f(25.5), Pm10: f(20.8), Pm25: f(13.5), O3: f(44.2), Latitude: f(48.5734), Longitude: f(7.7521)},
		{Commune: "Strasbourg", CodeInsee: "67482", Region: "Grand Est", Departement: "Bas-Rhin", Annee: 2021, No2: f(23.1), Pm10: f(19.2), Pm25: f(12.3), O3: f(46.5), Latitude: f(48.5734), Longitude: f(7.7521)},
		{Commune: "Strasbourg", CodeInsee: "67482", Region: "Grand Est", Departement: "Bas-Rhin", Annee: 2022, No2: f(20.8), Pm10: f(17.8), Pm25: f(11.2), O3: f(48.2), Latitude: f(48.5734), Longitude: f(7.7521)},
		// Pays de la Loire
		{Commune: "Nantes", CodeInsee: "44109", Region: "Pays de la Loire", Departement: "Loire-Atlantique", Annee: 2020, No2: f(20.5), Pm10: f(16.2), Pm25: f(10.2), O3: f(47.8), Latitude: f(47.2184), Longitude: f(-1.5536)},
		{Commune: "Nantes", CodeInsee: "44109", Region: "Pays de la Loire", Departement: "Loire-Atlantique", Annee: 2021, No2: f(18.2), Pm10: f(14.8), Pm25: f(9.2), O3: f(49.5), Latitude: f(47.2184), Longitude: f(-1.5536)},
		{Commune: "Nantes", CodeInsee: "44109", Region: "Pays de la Loire", Departement: "Loire-Atlantique", Annee: 2022, No2: f(16.5), Pm10: f(13.5), Pm25: f(8.5), O3: f(51.2), Latitude: f(47.2184), Longitude: f(-1.5536)},
		// Bretagne
		{Commune: "Rennes", CodeInsee: "35238", Region: "Bretagne", Departement: "Ille-et-Vilaine", Annee: 2020, No2: f(18.8), Pm10: f(14.5), Pm25: f(9.2), O3: f(45.5), Latitude: f(48.1173), Longitude: f(-1.6778)},
		{Commune: "Rennes", CodeInsee: "35238", Region: "Bretagne", Departement: "Ille-et-Vilaine", Annee: 2021, No2: f(16.5), Pm10: f(13.2), Pm25: f(8.3), O3: f(47.2), Latitude: f(48.1173), Longitude: f(-1.6778)},
		{Commune: "Rennes", CodeInsee: "35238", Region: "Bretagne", Departement: "Ille-et-Vilaine", Annee: 2022, No2: f(14.8), Pm10: f(12.1), Pm25: f(7.6), O3: f(48.8), Latitude: f(48.1173), Longitude: f(-1.6778)},
	}
}
