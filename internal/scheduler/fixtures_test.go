package scheduler

import (
	"fmt"

	"github.com/noah-isme/curriculum-scheduler/internal/models"
)

const testTerm = "2024-1"

func lectureRoom(id string, capacity int) models.Room {
	return models.Room{ID: id, Capacity: capacity, Type: models.RoomTypeLecture}
}

func labRoom(id string, capacity int) models.Room {
	return models.Room{ID: id, Capacity: capacity, Type: models.RoomTypeLab}
}

func fullTime(id string, qualifications ...string) models.Faculty {
	return models.Faculty{ID: id, EmploymentType: models.EmploymentFullTime, Qualifications: qualifications}
}

func partTime(id string, qualifications ...string) models.Faculty {
	return models.Faculty{ID: id, EmploymentType: models.EmploymentPartTime, Qualifications: qualifications}
}

func course(program string, year int, code string, lecture, lab float64) models.Course {
	return models.Course{Program: program, Year: year, Term: testTerm, Code: code, LectureHours: lecture, LabHours: lab}
}

func enrollment(program string, year, count int) models.Enrollment {
	return models.Enrollment{Program: program, Year: year, Term: testTerm, Count: count}
}

func section(id string, size int) models.Section {
	return models.Section{ID: id, Program: "BSIT", Year: 1, Term: testTerm, Letter: "A", Size: size}
}

// sampleInput builds a mid-sized catalog with mixed lecture/lab courses.
func sampleInput() Input {
	in := Input{
		Rooms: []models.Room{
			lectureRoom("R101", 40),
			lectureRoom("R102", 45),
			lectureRoom("R103", 30),
			{ID: "R201", Capacity: 50, Type: models.RoomTypeEither},
			labRoom("L301", 40),
			labRoom("L302", 35),
		},
		Faculty: []models.Faculty{
			fullTime("F001"),
			fullTime("F002", "IT101", "IT102", "IT103"),
			fullTime("F003", "CS101", "CS102", "CS103"),
			partTime("F004"),
			partTime("F005", "IT103", "CS103"),
			fullTime("F006"),
		},
		Enrollments: []models.Enrollment{
			enrollment("BSIT", 1, 75),
			enrollment("BSIT", 2, 52),
			enrollment("BSCS", 1, 90),
			enrollment("BSCS", 2, 33),
		},
	}
	for _, program := range []string{"BSIT", "BSCS"} {
		prefix := "IT"
		if program == "BSCS" {
			prefix = "CS"
		}
		for year := 1; year <= 2; year++ {
			in.Courses = append(in.Courses,
				course(program, year, fmt.Sprintf("%s%d01", prefix, year), 3, 0),
				course(program, year, fmt.Sprintf("%s%d02", prefix, year), 2, 3),
				course(program, year, fmt.Sprintf("%s%d03", prefix, year), 3.5, 0),
				course(program, year, fmt.Sprintf("%s%d04", prefix, year), 1, 1.5),
			)
		}
	}
	return in
}
