// file: internals/seeds/seed.go
package seeds

import (
	"log"
	"time"

	"github.com/bytedance/sonic"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	labModel "labreserve_backend/internals/features/labs/model"
	resvModel "labreserve_backend/internals/features/reservations/model"
	"labreserve_backend/internals/helpers/dbtime"
)

/* =======================================================
   Demo dataset: the campus lab catalog, a rolling 30-day
   weekday timetable and a handful of sample reservations.
   Idempotent: rows are matched on their natural keys, so
   re-running on boot never duplicates.
   ======================================================= */

type labSeed struct {
	Number    string
	Building  string
	Floor     int
	Capacity  int
	Equipment []string
}

var labSeeds = []labSeed{
	{"E401", "Engineering Block", 4, 60, []string{"Computers", "Projector", "Whiteboard"}},
	{"E402", "Engineering Block", 4, 50, []string{"Computers", "Projector"}},
	{"E403", "Engineering Block", 4, 45, []string{"Computers", "Smart Board"}},
	{"E301", "Engineering Block", 3, 40, []string{"Computers", "Projector"}},
	{"E302", "Engineering Block", 3, 40, []string{"Computers"}},
	{"E201", "Engineering Block", 2, 35, []string{"Computers", "Projector"}},
	{"E202", "Engineering Block", 2, 30, []string{"Computers"}},
	{"CS-Lab1", "CS Block", 1, 55, []string{"High-end Workstations", "Multiple Monitors"}},
	{"CS-Lab2", "CS Block", 1, 55, []string{"Workstations", "Network Equipment"}},
	{"CS-Lab3", "CS Block", 2, 45, []string{"Computers", "Server Rack"}},
	{"ECE-Lab1", "ECE Block", 1, 40, []string{"Oscilloscopes", "Signal Generators"}},
	{"ECE-Lab2", "ECE Block", 1, 40, []string{"VLSI Equipment", "Testing Boards"}},
	{"Mech-Lab1", "Mechanical Block", 1, 30, []string{"Workbenches", "Tools"}},
	{"Seminar-Hall", "Main Building", 2, 100, []string{"Projector", "Audio System", "Stage"}},
	{"Conference-Room", "Admin Block", 3, 25, []string{"Video Conferencing", "Whiteboard"}},
}

type classSeed struct {
	Lab     string
	Session string
	Class   string
	Section string
	Batch   string
	Subject string
	Faculty string
	Start   string
	End     string
}

var classSeeds = []classSeed{
	{"E401", "morning", "CSDS", "A", "2022", "Operating Systems", "Dr. Madhuri", "09:00", "11:00"},
	{"E401", "afternoon", "CSE", "B", "2023", "Data Structures", "Dr. Ramesh", "14:00", "16:00"},
	{"E402", "morning", "ECE", "A", "2022", "Digital Signal Processing", "Dr. Kavitha", "09:00", "11:00"},
	{"E403", "morning", "IT", "A", "2023", "Database Management", "Dr. Suresh", "09:00", "11:00"},
	{"E301", "afternoon", "CSE", "C", "2024", "Programming Fundamentals", "Dr. Priya", "14:00", "16:00"},
	{"CS-Lab1", "morning", "CSDS", "B", "2022", "Machine Learning", "Dr. Anil", "09:00", "12:00"},
	{"CS-Lab2", "afternoon", "CSE", "A", "2023", "Computer Networks", "Dr. Vijay", "14:00", "17:00"},
	{"ECE-Lab1", "morning", "ECE", "B", "2023", "VLSI Design", "Dr. Lakshmi", "09:00", "12:00"},
}

type reservationSeed struct {
	Lab          string
	DayOffset    int
	Start        string
	End          string
	Participants int
	Purpose      string
	Description  string
	Email        string
	Name         string
	Score        float64
	Status       string
}

var reservationSeeds = []reservationSeed{
	{"E202", 2, "14:00", "16:00", 25, "workshop",
		"Python programming workshop for beginners",
		"student1@vnrvjiet.in", "Rahul Kumar", 68.5, "approved"},
	{"Seminar-Hall", 5, "10:00", "13:00", 80, "event",
		"Annual technical symposium - CodeFest 2025",
		"event.coordinator@vnrvjiet.in", "Dr. Suresh Babu", 85.2, "approved"},
	{"Conference-Room", 3, "15:00", "17:00", 20, "meeting",
		"Department faculty meeting to discuss curriculum updates",
		"hod.cse@vnrvjiet.in", "Dr. Ramesh Kumar", 55.0, "approved"},
	{"CS-Lab3", 7, "09:00", "12:00", 40, "exam",
		"Mid-term practical examination for Data Structures course",
		"exam.cell@vnrvjiet.in", "Dr. Madhuri", 92.0, "approved"},
	{"E301", 10, "16:00", "18:00", 30, "practice",
		"Coding competition practice session for students",
		"coding.club@vnrvjiet.in", "Priya Sharma", 48.0, "pending"},
	{"ECE-Lab2", 8, "14:00", "17:00", 35, "workshop",
		"PCB design workshop with hands-on training",
		"ece.society@vnrvjiet.in", "Kiran Reddy", 71.5, "pending"},
}

// Run seeds the catalog, timetable and sample reservations.
func Run(db *gorm.DB) error {
	if err := seedLabs(db); err != nil {
		return err
	}
	if err := seedTimetable(db); err != nil {
		return err
	}
	if err := seedReservations(db); err != nil {
		return err
	}
	log.Println("🌱 Seed data loaded")
	return nil
}

func seedLabs(db *gorm.DB) error {
	for _, s := range labSeeds {
		equipment, err := sonic.Marshal(s.Equipment)
		if err != nil {
			return err
		}
		row := labModel.LabModel{
			LabNumber:    s.Number,
			LabBuilding:  s.Building,
			LabFloor:     s.Floor,
			LabCapacity:  s.Capacity,
			LabEquipment: datatypes.JSON(equipment),
			LabIsActive:  true,
		}
		if err := db.Where("lab_number = ?", s.Number).
			FirstOrCreate(&row).Error; err != nil {
			return err
		}
	}
	return nil
}

func seedTimetable(db *gorm.DB) error {
	today := time.Now()
	for offset := 0; offset < 30; offset++ {
		day := today.AddDate(0, 0, offset)
		if wd := day.Weekday(); wd == time.Saturday || wd == time.Sunday {
			continue
		}
		date := datatypes.Date(time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC))
		for _, s := range classSeeds {
			start, err := dbtime.Parse(s.Start)
			if err != nil {
				return err
			}
			end, err := dbtime.Parse(s.End)
			if err != nil {
				return err
			}
			row := labModel.ScheduleBlockModel{
				ScheduleBlockLabNumber:   s.Lab,
				ScheduleBlockDate:        date,
				ScheduleBlockSession:     s.Session,
				ScheduleBlockClass:       s.Class,
				ScheduleBlockSection:     s.Section,
				ScheduleBlockBatch:       s.Batch,
				ScheduleBlockSubject:     s.Subject,
				ScheduleBlockFacultyName: s.Faculty,
				ScheduleBlockStartTime:   start,
				ScheduleBlockEndTime:     end,
			}
			if err := db.Where(
				"schedule_block_lab_number = ? AND schedule_block_date = ? AND schedule_block_session = ?",
				s.Lab, date, s.Session,
			).FirstOrCreate(&row).Error; err != nil {
				return err
			}
		}
	}
	return nil
}

func seedReservations(db *gorm.DB) error {
	today := time.Now()
	for _, s := range reservationSeeds {
		day := today.AddDate(0, 0, s.DayOffset)
		date := datatypes.Date(time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC))
		start, err := dbtime.Parse(s.Start)
		if err != nil {
			return err
		}
		end, err := dbtime.Parse(s.End)
		if err != nil {
			return err
		}
		row := resvModel.ReservationModel{
			ReservationLabNumber:       s.Lab,
			ReservationDate:            date,
			ReservationStartTime:       start,
			ReservationEndTime:         end,
			ReservationNumParticipants: s.Participants,
			ReservationPurpose:         s.Purpose,
			ReservationDescription:     s.Description,
			ReservationUserEmail:       s.Email,
			ReservationUserName:        s.Name,
			ReservationUrgency:         "normal",
			ReservationStatus:          s.Status,
			ReservationPriorityScore:   s.Score,
		}
		if err := db.Where(
			"reservation_lab_number = ? AND reservation_date = ? AND reservation_user_email = ?",
			s.Lab, date, s.Email,
		).FirstOrCreate(&row).Error; err != nil {
			return err
		}
	}
	return nil
}
