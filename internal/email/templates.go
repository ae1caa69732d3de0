package email

import "html/template"

var alertTemplate = template.Must(template.New("alert").Parse(`<html>
<head>
<style>
 body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
 .container { max-width: 600px; margin: 0 auto; padding: 20px; }
 .header { background: #4a6fa5; color: white; padding: 30px; border-radius: 10px 10px 0 0; }
 .content { background: #f4f4f4; padding: 30px; border-radius: 0 0 10px 10px; }
 .alert-box { background: #fff3cd; border-left: 4px solid #ffc107; padding: 15px; margin: 20px 0; border-radius: 5px; }
 .footer { text-align: center; margin-top: 20px; color: #666; font-size: 12px; }
</style>
</head>
<body>
<div class="container">
 <div class="header">
  <h1>Weather Alert Service</h1>
  <p>Your personalized weather notification</p>
 </div>
 <div class="content">
  <h2>Alert for {{.City}}</h2>
  <div class="alert-box">
   <strong>Alert:</strong><br/>
   {{.Message}}
  </div>
  <p>This alert was triggered by your weather preferences. To change your thresholds or condition opt-ins, update your preferences through the API.</p>
 </div>
 <div class="footer">
  <p>Weather Alert Service - powered by OpenWeatherMap</p>
 </div>
</div>
</body>
</html>`))

var welcomeTemplate = template.Must(template.New("welcome").Parse(`<html>
<head>
<style>
 body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
 .container { max-width: 600px; margin: 0 auto; padding: 20px; }
 .header { background: #4a6fa5; color: white; padding: 30px; border-radius: 10px 10px 0 0; text-align: center; }
 .content { background: #f4f4f4; padding: 30px; border-radius: 0 0 10px 10px; }
 .footer { text-align: center; margin-top: 20px; color: #666; font-size: 12px; }
</style>
</head>
<body>
<div class="container">
 <div class="header">
  <h1>Welcome!</h1>
  <p>You are now registered for weather alerts</p>
 </div>
 <div class="content">
  <p>Thank you for registering with the Weather Alert Service.</p>
  <p><strong>Your location:</strong> {{.City}}</p>
  <p>We check the weather in your area on a fixed schedule and email you when current conditions match your preferences:</p>
  <ul>
   <li>Temperature outside your min/max thresholds</li>
   <li>Rain, snow or storms, if you opted in</li>
  </ul>
 </div>
 <div class="footer">
  <p>Weather Alert Service - stay informed, stay prepared</p>
 </div>
</div>
</body>
</html>`))

var testTemplate = template.Must(template.New("test").Parse(`<html>
<body style="font-family: Arial, sans-serif; padding: 20px;">
<h2>Email Configuration Test</h2>
<p>If you are reading this, the SMTP configuration is working.</p>
<ul>
 <li>Recipient: {{.To}}</li>
 <li>Subject: {{.Subject}}</li>
 <li>Time: {{.Time}}</li>
</ul>
</body>
</html>`))
